/*
Package x contains the extensions of the kitty chain.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in the app package to construct
the application. This package holds what they share: the
Authenticator used to find out who signed a transaction.
*/
package x
