package segment

import (
	"context"
	"strconv"

	"gitlab.com/tinyland/lab/contrail/pkg/style"
)

// sgStatusStyle picks segments.<name>.style_success when the last command
// exited 0 and style_error otherwise. The chosen sub-style replaces the
// segment style outright; a missing sub-style leaves the segment style.
func sgStatusStyle(req Request) (style.Style, error) {
	key := "segments." + req.Name + ".style_error"
	if req.Env.ExitCode == 0 {
		key = "segments." + req.Name + ".style_success"
	}
	s, ok, err := req.Resolver.StyleTable(key)
	if err != nil {
		return style.Style{}, err
	}
	if !ok {
		return req.Options.Style, nil
	}
	return s, nil
}

// ExitCode renders the previous command's exit status.
func ExitCode(_ context.Context, req Request) (*Segment, error) {
	s, err := sgStatusStyle(req)
	if err != nil {
		return nil, err
	}
	return Build(req, strconv.Itoa(int(req.Env.ExitCode)), s), nil
}

// Prompt renders the prompt glyph, colored by the previous command's exit
// status. The glyph is the output option, "$" unless configured.
func Prompt(_ context.Context, req Request) (*Segment, error) {
	s, err := sgStatusStyle(req)
	if err != nil {
		return nil, err
	}
	return Build(req, "$", s), nil
}
