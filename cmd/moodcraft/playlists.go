package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

func init() {
	playlistsCmd := &cobra.Command{
		Use:   "playlists",
		Short: "Manage the local playlist store",
	}

	playlistsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved playlists, newest first",
		RunE:  runPlaylistsList,
	})
	playlistsCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved playlist with its tracks",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlaylistsShow,
	})
	playlistsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one saved playlist",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlaylistsDelete,
	})

	rootCmd.AddCommand(playlistsCmd)
}

func runPlaylistsList(cmd *cobra.Command, args []string) error {
	repo, closer, err := buildRepository()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	summaries, err := repo.List(context.Background())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No playlists saved yet.")
		return nil
	}
	for _, s := range summaries {
		line := fmt.Sprintf("%s  %-30q %3d tracks", s.ID, s.Title, s.TrackCount)
		if s.Mood != "" {
			line += "  mood=" + s.Mood
		}
		if s.GenreOrLanguage != "" {
			line += "  genre=" + s.GenreOrLanguage
		}
		fmt.Println(line)
	}
	return nil
}

func runPlaylistsShow(cmd *cobra.Command, args []string) error {
	repo, closer, err := buildRepository()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	p, err := repo.Load(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("playlist %s not found", args[0])
		}
		return err
	}

	fmt.Printf("%s (%s)\n", p.Title, p.CreatedAt)
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	fmt.Println()
	for i, t := range p.Tracks {
		fmt.Printf("%2d. %s - %s  [%.3f]\n", i+1, t.Name, t.Artists, t.Score)
		if t.Reason != "" {
			fmt.Printf("    %s\n", t.Reason)
		}
		if t.Energy > 0 {
			fmt.Printf("    measured energy: %.3f\n", t.Energy)
		}
	}
	return nil
}

func runPlaylistsDelete(cmd *cobra.Command, args []string) error {
	repo, closer, err := buildRepository()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	removed, err := repo.Delete(context.Background(), args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("playlist %s not found", args[0])
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
