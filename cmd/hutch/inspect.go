package main

import (
	"fmt"

	"github.com/cuemby/hutch/pkg/types"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <ref>",
	Short: "Resolve a ref to its stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var refsCmd = &cobra.Command{
	Use:   "refs [prefix]",
	Short: "List refs, optionally filtered by prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRefs,
}

var objectCmd = &cobra.Command{
	Use:   "object <hash>",
	Short: "Print a stored object by hash",
	Args:  cobra.ExactArgs(1),
	RunE:  runObject,
}

func runGet(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.close()

	name := args[0]
	hash, ok, err := db.refs.Get(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ref not found: %s", name)
	}

	value, found, err := db.store.Get(hash)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("ref %s points at missing object %s", name, hash)
	}

	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n%s\n", name, hash, payload)
	return nil
}

func runRefs(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.close()

	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}

	names, err := db.refs.List(prefix)
	if err != nil {
		return err
	}
	for _, name := range names {
		hash, _, err := db.refs.Get(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n", hash, name)
	}
	return nil
}

func runObject(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.close()

	hash := types.Hash(args[0])
	value, ok, err := db.store.Get(hash)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("object not found: %s", hash)
	}

	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}
