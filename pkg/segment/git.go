package segment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// sgGitSettings holds the segments.git keys the provider reads.
type sgGitSettings struct {
	showChanges     bool
	showDiffStats   bool
	showAheadBehind bool

	dirty, insertion, deletion string
	ahead, behind, detached    string
}

func sgReadGitSettings(req Request) (sgGitSettings, error) {
	tree := req.Resolver.Tree()
	prefix := "segments." + req.Name + "."

	s := sgGitSettings{
		showChanges:     true,
		showAheadBehind: true,
		dirty:           "+",
		insertion:       "+",
		deletion:        "-",
		ahead:           "⇡",
		behind:          "⇣",
	}

	for key, dst := range map[string]*bool{
		"show_changes":      &s.showChanges,
		"show_diff_stats":   &s.showDiffStats,
		"show_ahead_behind": &s.showAheadBehind,
	} {
		v, ok, err := tree.Bool(prefix + key)
		if err != nil {
			return s, err
		}
		if ok {
			*dst = v
		}
	}

	for key, dst := range map[string]*string{
		"symbol_dirty":     &s.dirty,
		"symbol_insertion": &s.insertion,
		"symbol_deletion":  &s.deletion,
		"symbol_ahead":     &s.ahead,
		"symbol_behind":    &s.behind,
		"symbol_detached":  &s.detached,
	} {
		v, ok, err := tree.String(prefix + key)
		if err != nil {
			return s, err
		}
		if ok {
			*dst = v
		}
	}
	return s, nil
}

// Git renders the branch of the repository enclosing the working directory,
// followed by optional change and ahead/behind fragments. Outside a
// repository, or with an unborn HEAD, the segment is hidden. A failing
// fragment is dropped on its own.
func Git(ctx context.Context, req Request) (*Segment, error) {
	settings, err := sgReadGitSettings(req)
	if err != nil {
		return nil, err
	}
	log := req.Env.logger().With("segment", req.Name)

	if req.Env.OpenRepo == nil {
		return nil, nil
	}
	repo, err := req.Env.OpenRepo(ctx, sgWorkingDir(req.Env))
	if err != nil {
		log.Debug("no repository", "error", err)
		return nil, nil
	}

	head, err := repo.Head(ctx)
	if err != nil {
		log.Debug("head unavailable", "error", err)
		return nil, nil
	}

	var b strings.Builder
	if head.Detached {
		b.WriteString(settings.detached + head.Commit)
	} else {
		b.WriteString(head.Branch)
	}

	if settings.showChanges {
		b.WriteString(sgChangesFragment(ctx, repo, settings, log))
	}
	if settings.showAheadBehind {
		b.WriteString(sgAheadBehindFragment(ctx, repo, settings, log))
	}

	return Build(req, b.String(), req.Options.Style), nil
}

func sgChangesFragment(ctx context.Context, repo Repository, s sgGitSettings, log *slog.Logger) string {
	stats, err := repo.DiffStats(ctx)
	if err != nil {
		log.Debug("diff stats unavailable", "error", err)
		return ""
	}
	if !stats.Dirty() {
		return ""
	}
	if s.showDiffStats {
		return fmt.Sprintf(" (%s%d, %s%d)", s.deletion, stats.Deletions, s.insertion, stats.Insertions)
	}
	return " " + s.dirty
}

func sgAheadBehindFragment(ctx context.Context, repo Repository, s sgGitSettings, log *slog.Logger) string {
	upstream, err := repo.Upstream(ctx)
	if err != nil {
		log.Debug("upstream unavailable", "error", err)
		return ""
	}
	ahead, behind, err := repo.AheadBehind(ctx, upstream)
	if err != nil {
		log.Debug("ahead/behind unavailable", "upstream", upstream, "error", err)
		return ""
	}

	var out string
	if ahead > 0 {
		out += fmt.Sprintf(" %s%d", s.ahead, ahead)
	}
	if behind > 0 {
		out += fmt.Sprintf(" %s%d", s.behind, behind)
	}
	return out
}
