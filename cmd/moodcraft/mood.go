package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harmonia-labs/moodcraft/internal/core/mood"
)

var (
	moodColor string
	moodEmoji string
)

func init() {
	moodCmd := &cobra.Command{
		Use:   "mood <text>",
		Short: "Inspect what the mood engine makes of a description",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMood,
	}

	moodCmd.Flags().StringVar(&moodColor, "color", "", "Add a color signal (red, blue, yellow, ...)")
	moodCmd.Flags().StringVar(&moodEmoji, "emoji", "", "Add an emoji signal")

	rootCmd.AddCommand(moodCmd)
}

func runMood(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	label, conf, dist := buildClassifier().ClassifyText(text)
	signals := []mood.Signal{{Dist: dist, Weight: mood.WeightText}}
	if moodColor != "" {
		signals = append(signals, mood.Signal{Dist: mood.FromColor(moodColor), Weight: mood.WeightColor})
	}
	if moodEmoji != "" {
		signals = append(signals, mood.Signal{Dist: mood.FromEmoji(moodEmoji), Weight: mood.WeightEmoji})
	}

	fused := mood.Fuse(signals...)
	fmt.Printf("Text signal:  %s (%.2f)\n", label, conf)
	fmt.Printf("Fused mood:   %s (%.2f)\n\n", fused.Label, fused.Confidence)

	labels := fused.Distribution.Labels()
	sort.Slice(labels, func(i, j int) bool {
		return fused.Distribution[labels[i]] > fused.Distribution[labels[j]]
	})
	for _, l := range labels {
		if fused.Distribution[l] < 0.005 {
			continue
		}
		fmt.Printf("  %-10s %5.1f%%\n", l, fused.Distribution[l]*100)
	}
	return nil
}
