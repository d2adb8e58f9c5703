package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jaytaylor.com/acaana/hierarchy"
)

func newTopicsCmd() *cobra.Command {
	topicsCmd := &cobra.Command{
		Use:     "topics",
		Aliases: []string{"topic", "hierarchy"},
		Short:   "Topic hierarchy utilities",
		Long:    "Inspect the built-in topic hierarchy",
	}

	topicsCmd.AddCommand(
		newTopicsTreeCmd(),
		newTopicsDistanceCmd(),
		newTopicsPathCmd(),
	)

	return topicsCmd
}

func newTopicsTreeCmd() *cobra.Command {
	treeCmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the topic forest",
		Long:  "Prints every topic tree, indented by depth, followed by the related root pairs",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			h := hierarchy.Default()
			h.Each(func(heading hierarchy.Heading) {
				fmt.Printf("%v%v\n", strings.Repeat("  ", heading.Depth), heading.Name)
			})
			fmt.Println()
			for _, pair := range hierarchy.DefaultRelated {
				fmt.Printf("%v <-> %v\n", pair[0], pair[1])
			}
		},
	}
	return treeCmd
}

func newTopicsDistanceCmd() *cobra.Command {
	distanceCmd := &cobra.Command{
		Use:   "distance <topic-a> <topic-b>",
		Short: "Semantic distance between two topics",
		Long:  "Prints the semantic distance between two topic names, 0 meaning same tree or unresolvable",
		Args:  cobra.ExactArgs(2),
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			h := hierarchy.Default()
			for _, arg := range args {
				if heading, ok := h.Resolve(arg); ok {
					log.WithField("topic", arg).WithField("path", h.PathString(heading)).Debug("Resolved")
				} else {
					log.WithField("topic", arg).Warn("Topic unresolvable")
				}
			}
			fmt.Println(h.Distance(args[0], args[1]))
		},
	}
	return distanceCmd
}

func newTopicsPathCmd() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path <topic>...",
		Short: "Path to root of topics",
		Long:  "Prints the colon-delimited path from each resolved topic up to its tree root",
		Args:  cobra.MinimumNArgs(1),
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			var (
				h     = hierarchy.Default()
				paths = map[string]string{}
			)
			for _, arg := range args {
				heading, ok := h.Resolve(arg)
				if !ok {
					log.WithField("topic", arg).Warn("Topic unresolvable")
					continue
				}
				paths[arg] = h.PathString(heading)
			}
			if err := emitJSON(paths); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}
	return pathCmd
}
