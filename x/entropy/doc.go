/*
Package entropy provides the randomness oracle used by extensions that
need unpredictable looking values, such as kitty DNA.

Values are derived from data of the previous block and the caller
provided subject. They are deterministic for all nodes that process the
same block, which is required for consensus, and are therefore NOT
suitable for anything that has to be secure against a block producer.
*/
package entropy
