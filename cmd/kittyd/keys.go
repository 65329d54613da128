package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/crypto"
	"github.com/korzewski/weave/errors"
)

var isKeyName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,32}$`).MatchString

func (c *cli) keysCmd() *cobra.Command {
	keys := &cobra.Command{
		Use:   "keys",
		Short: "Manage the signing keys stored in the home directory",
	}
	keys.AddCommand(&cobra.Command{
		Use:   "new <name>",
		Short: "Generate a new ed25519 key and print its address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := crypto.GenPrivKeyEd25519()
			if err := c.saveKey(args[0], key); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey().Condition().Address())
			return err
		},
	})
	keys.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print the address of a stored key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := c.loadKey(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey().Condition().Address())
			return err
		},
	})
	return keys
}

func (c *cli) keyPath(name string) (string, error) {
	if !isKeyName(name) {
		return "", errors.Wrapf(errors.ErrInput, "key name %q", name)
	}
	return filepath.Join(c.conf.Home, "keys", name+".json"), nil
}

func (c *cli) saveKey(name string, key *crypto.PrivateKey) error {
	path, err := c.keyPath(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "key %q", name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	raw, err := json.Marshal(key)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return errors.Wrap(ioutil.WriteFile(path, raw, 0600), "write key")
}

func (c *cli) loadKey(name string) (*crypto.PrivateKey, error) {
	path, err := c.keyPath(name)
	if err != nil {
		return nil, err
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "key %q", name)
		}
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	var key crypto.PrivateKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "key %q: %s", name, err)
	}
	return &key, nil
}

// resolveAddress accepts an address or the name of a stored key.
func (c *cli) resolveAddress(s string) (weave.Address, error) {
	if addr, err := weave.ParseAddress(s); err == nil {
		return addr, nil
	}
	key, err := c.loadKey(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "%q is neither an address nor a key", s)
	}
	return key.PublicKey().Condition().Address(), nil
}
