/*
Package utils holds the decorators every transaction passes through
before it reaches a handler: panic recovery, logging and savepoints.
*/
package utils
