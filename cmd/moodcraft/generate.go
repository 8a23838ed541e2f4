package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/services"
)

var (
	generateMood     string
	generateActivity string
	generateGenre    string
	generateLimit    int
	generateClean    bool
	generateSeed     int64
	generateSave     bool
	generateTitle    string
)

func init() {
	generateCmd := &cobra.Command{
		Use:   "generate <vibe>",
		Short: "Generate a ranked playlist from a vibe description",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runGenerate,
	}

	generateCmd.Flags().StringVarP(&generateMood, "mood", "m", "", "Override mood detection (happy, sad, chill, ...)")
	generateCmd.Flags().StringVarP(&generateActivity, "activity", "a", "", "Activity context (workout, study, party, sleep)")
	generateCmd.Flags().StringVarP(&generateGenre, "genre", "g", "", "Genre and/or language hint (e.g. \"hip hop, sinhala\")")
	generateCmd.Flags().IntVarP(&generateLimit, "limit", "n", services.DefaultLimit, "Number of tracks (1-100)")
	generateCmd.Flags().BoolVar(&generateClean, "clean", false, "Exclude explicit tracks")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Fixed random seed for reproducible output")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Persist the playlist to the local store")
	generateCmd.Flags().StringVarP(&generateTitle, "title", "t", "", "Title when saving")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	svc, closer, err := buildService()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	vibe := strings.Join(args, " ")
	ctx := context.Background()

	result, err := svc.Generate(ctx, services.GenerateParams{
		Vibe:            vibe,
		Mood:            generateMood,
		Activity:        generateActivity,
		GenreOrLanguage: generateGenre,
		ExcludeExplicit: generateClean,
		Limit:           generateLimit,
		Seed:            generateSeed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Mood: %s (%.0f%% confident)\n", result.Mood.Label, result.Mood.Confidence*100)
	fmt.Printf("%s\n\n", result.Description)

	if len(result.Tracks) == 0 {
		fmt.Println("No tracks found. Try loosening the genre or language filter.")
		return nil
	}

	for i, rt := range result.Tracks {
		var artists []string
		for _, a := range rt.Track.Artists {
			artists = append(artists, a.Name)
		}
		fmt.Printf("%2d. %s - %s  [%.3f]\n", i+1, rt.Track.Name, strings.Join(artists, ", "), rt.Score)
		fmt.Printf("    %s\n", rt.Reason)
	}

	if !generateSave {
		return nil
	}

	saved, err := svc.Save(ctx, generateTitle, domain.PlaylistRequest{
		Vibe:            vibe,
		Mood:            result.Mood.Label,
		Activity:        generateActivity,
		GenreOrLanguage: generateGenre,
		ExcludeExplicit: generateClean,
		Limit:           len(result.Tracks),
	}, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nSaved as %s (%q)\n", saved.ID, saved.Title)
	return nil
}
