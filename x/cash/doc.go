/*
Package cash keeps the fungible balance of every account.

Balances are held in a single currency, set in the gconf configuration
together with the existential deposit: the minimal balance an account must
keep to exist. Transfers either keep the source account alive or allow it
to be reaped, in which case any remaining dust is burnt.
*/
package cash
