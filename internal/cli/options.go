package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andriilab/sdv/pkg/pipeline"
)

// analysisOpts holds the flags shared by the commands that read solutions.
// Unset flags fall back to the config file.
type analysisOpts struct {
	include      []string
	exclude      []string
	labels       []string
	projects     bool
	merge        bool
	packageCache string
	noCache      bool
}

func (o *analysisOpts) bind(cmd *cobra.Command, withMerge bool) {
	f := cmd.Flags()
	f.StringSliceVarP(&o.include, "include", "i", nil, "only packages matching these patterns (comma-separated, repeatable)")
	f.StringSliceVarP(&o.exclude, "exclude", "e", nil, "skip packages matching these patterns (comma-separated, repeatable)")
	f.BoolVar(&o.projects, "projects", false, "show referenced projects as dependencies")
	f.StringVar(&o.packageCache, "package-cache", "", "global NuGet packages folder (default $NUGET_PACKAGES or ~/.nuget/packages)")
	f.BoolVar(&o.noCache, "no-cache", false, "do not cache parsed package archives")
	if withMerge {
		f.BoolVar(&o.merge, "merge", false, "collapse the projects of each solution into one node")
		f.StringArrayVar(&o.labels, "label", nil, "append labels to matching nodes: pattern=label1,label2 (repeatable)")
	}
}

// request merges the flags that were set on cmd over the config file.
// Positional solutions replace configured ones.
func (c *CLI) request(cmd *cobra.Command, o *analysisOpts, solutions []string) (pipeline.Request, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Request{}, err
	}
	req := pipeline.RequestFromConfig(cfg)
	if len(solutions) > 0 {
		req.Solutions = solutions
	}

	f := cmd.Flags()
	if f.Changed("include") {
		req.Include = o.include
	}
	if f.Changed("exclude") {
		req.Exclude = o.exclude
	}
	if f.Changed("projects") {
		req.IncludeProjects = o.projects
	}
	if f.Changed("merge") {
		req.MergeProjects = o.merge
	}
	if f.Changed("package-cache") {
		req.PackageCache = o.packageCache
	}
	if len(o.labels) > 0 {
		labels, err := parseLabels(o.labels)
		if err != nil {
			return pipeline.Request{}, err
		}
		merged := make(map[string][]string, len(req.Labels)+len(labels))
		for k, v := range req.Labels {
			merged[k] = v
		}
		for k, v := range labels {
			merged[k] = v
		}
		req.Labels = merged
	}
	return req, nil
}

// parseLabels parses "pattern=label1,label2" flag values. Repeating a
// pattern appends to its labels.
func parseLabels(values []string) (map[string][]string, error) {
	labels := make(map[string][]string, len(values))
	for _, v := range values {
		key, list, ok := strings.Cut(v, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid label %q (want pattern=label1,label2)", v)
		}
		labels[key] = append(labels[key], strings.Split(list, ",")...)
	}
	return labels, nil
}
