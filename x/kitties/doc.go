/*
Package kitties implements a ledger of uniquely identified collectibles and
a marketplace to trade them.

Every kitty is minted with a sequential 128 bit identifier and a 32 byte
DNA drawn from a Randomness oracle. Owners can list their kitties for a
price, cancel the listing, and any other account can buy a listed kitty.
A purchase moves the price from the buyer to the seller through a
Transferer. If the balance move fails, nothing else changes.

Ownership is tracked twice. The owner index of KittyBucket always points
at the current owner, while the Account record keeps the append-only list
of kitties an address has minted.
*/
package kitties
