// moodcraft is the command-line front end: generate playlists from a vibe,
// inspect the mood engine, and manage the local playlist store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "moodcraft",
	Short: "Mood-aware playlist curation from the terminal",
	Long: `Mood-aware playlist curation from the terminal.

Describe your vibe in plain words and get a ranked playlist back.

Examples:
  moodcraft generate "rainy evening lofi" --limit 15
  moodcraft generate "gym bangers" --genre "hip hop" --save
  moodcraft mood "quiet night, can't sleep"
  moodcraft playlists list`,
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
