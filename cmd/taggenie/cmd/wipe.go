package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/foxside/taggenie/internal/adapters/bbolt"
	"github.com/spf13/cobra"
)

var wipeForce bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Drop all cached responses",
	Long:  "Deletes every cached autocomplete and video response. Stop `taggenie serve` first; it holds the cache open.",
	RunE:  runWipe,
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeForce, "force", false, "Skip confirmation prompt")
}

func runWipe(cmd *cobra.Command, args []string) error {
	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(paths.DB); os.IsNotExist(err) {
		fmt.Println("⚡ no cached data")
		return nil
	}

	if !wipeForce {
		fmt.Printf("⚠ This will delete all cached responses in %s. Continue? [y/N] ", paths.DB)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	store, err := bbolt.NewStore(paths.DB)
	if err != nil {
		if isDBLockError(err) {
			return lockError{diagnosis: diagnoseDBLock(cfg)}
		}
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	n, err := store.Wipe()
	if err != nil {
		return err
	}
	fmt.Printf("⚡ wiped %d cached responses\n", n)
	return nil
}
