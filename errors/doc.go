/*
Package errors implements the error values shared by all extensions.

Every error returned from an extension should wrap one of the root errors
declared with Register. Root errors carry a unique ABCI code, which allows a
client to tell apart a missing kitty from an unauthorized request without
parsing the message.

Declare package specific root errors at program start:

	var ErrNotOwner = errors.Register(1001, "not the kitty owner")

and attach context at the point of failure:

	return errors.Wrapf(ErrNotOwner, "kitty %s", id)

The first Wrap records a stack trace.
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created

Use ErrXyz.Is(err) to test an error kind. Is follows the Cause chain, so
wrapping never hides the root.
*/
package errors
