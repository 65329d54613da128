/*
Package app contains the ABCI application of kittyd and the building
blocks it is made of: a message router, a decorator chain, the signed
transaction format and a commit store keeping the check and deliver
caches.

The standard stack is

	app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(router)

Signatures are verified outside of the savepoint, so the sequence of a
signer is increased even when the message itself fails.
*/
package app
