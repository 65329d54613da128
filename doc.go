/*
Package weave defines the interfaces shared by all packages of the kitty
chain: storage, transactions, handlers, decorators and events. It also
carries the context helpers used to pass the block header, chain id and
logger down to the extensions.
*/
package weave
