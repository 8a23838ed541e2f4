package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/services"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "profile",
		Short: "Show the taste profile built from saved playlists",
		RunE:  runProfile,
	})
}

func runProfile(cmd *cobra.Command, args []string) error {
	repo, closer, err := buildRepository()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	svc := &services.Orchestrator{Repository: repo}
	prof, err := svc.BuildProfile(context.Background())
	if err != nil {
		return err
	}
	if prof.Stats.TotalPlaylists == 0 {
		fmt.Println("No playlists saved yet; nothing to profile.")
		return nil
	}

	fmt.Printf("Playlists: %d   Unique tracks: %d\n\n", prof.Stats.TotalPlaylists, prof.Stats.TotalUniqueTracks)
	printEntries("Top moods", prof.TopMoods)
	printEntries("Top genres/languages", prof.TopGenres)
	printEntries("Top artists", prof.TopArtists)
	printEntries("Busiest weekdays", prof.TimePatterns.TopWeekdays)
	printEntries("Busiest hours", prof.TimePatterns.TopHours)
	return nil
}

func printEntries(label string, entries []domain.ProfileEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Println(label + ":")
	for _, e := range entries {
		fmt.Printf("  %-24s %6.3f\n", e.Value, e.Score)
	}
	fmt.Println()
}
