package script

import (
	"context"
	"fmt"

	"github.com/hupe1980/everybit"
)

// Failure reasons reported in Result.Reason.
const (
	ReasonSize         = "bitarray size"
	ReasonContent      = "bitarray content"
	ReasonInvalidInput = "bit_offset + bit_length > bitarray_length"
	ReasonNoArray      = "no bit array under test"
)

// Result is the outcome of one e line, or of an r line that failed.
type Result struct {
	File     string
	Line     int
	Case     int
	Op       Op
	Passed   bool
	Reason   string
	Expected string
	Actual   string
	// Err is the error returned by the rotation, if any.
	Err error
}

// Runner executes scripts.
type Runner struct {
	opts options
}

// NewRunner creates a Runner.
func NewRunner(optFns ...Option) *Runner {
	return &Runner{opts: applyOptions(optFns)}
}

// Run executes s and returns the results of its expectations.
//
// Failed expectations do not stop the run. Run returns an error only when an
// array cannot be allocated or ctx is canceled; the report then holds the
// results gathered so far.
func (r *Runner) Run(ctx context.Context, s *Script) (*Report, error) {
	st := &state{
		opts:   r.opts,
		report: &Report{File: s.Name},
		logger: r.opts.logger.WithFile(s.Name),
		ready:  r.opts.selected == AllCases,
		cur:    AllCases,
	}
	defer st.free()

	var err error
	for i := range s.Commands {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = st.exec(ctx, &s.Commands[i]); err != nil {
			break
		}
	}

	st.logger.LogRun(ctx, st.report.Passed(), st.report.Failed(), err)
	return st.report, err
}

type state struct {
	opts   options
	report *Report
	logger *everybit.Logger

	ba    *everybit.BitArray
	ready bool
	cur   int
}

func (st *state) exec(ctx context.Context, cmd *Command) error {
	if cmd.Op == OpCase {
		st.cur = cmd.Case
		st.ready = st.opts.selected == AllCases || cmd.Case == st.opts.selected
		if st.ready {
			st.report.Cases = append(st.report.Cases, CaseRun{ID: cmd.Case, Line: cmd.Line})
		}
		return nil
	}
	if !st.ready {
		return nil
	}

	switch cmd.Op {
	case OpNew:
		return st.newArray(ctx, cmd)
	case OpExpect:
		st.expect(ctx, cmd)
	case OpRotate:
		st.rotate(cmd)
	default:
		st.logger.WarnContext(ctx, "unknown command skipped",
			"line", cmd.Line,
			"token", cmd.Token,
		)
	}
	return nil
}

func (st *state) newArray(ctx context.Context, cmd *Command) error {
	st.free()

	ba, err := everybit.ParseBits(cmd.Bits, st.opts.bitArrayOptions()...)
	if err != nil {
		return fmt.Errorf("%s:%d: %w", st.report.File, cmd.Line, err)
	}
	st.ba = ba

	if st.opts.verbose != nil {
		fmt.Fprintf(st.opts.verbose, "%s newstr lit=%s\n", ba, cmd.Bits)
	}
	st.logger.DebugContext(ctx, "array replaced", "line", cmd.Line, "bits", ba.Len())
	return nil
}

func (st *state) expect(ctx context.Context, cmd *Command) {
	res := Result{
		File:     st.report.File,
		Line:     cmd.Line,
		Case:     st.cur,
		Op:       OpExpect,
		Expected: cmd.Bits,
	}

	if st.ba == nil {
		res.Reason = ReasonNoArray
		res.Err = ErrNoArray
	} else {
		res.Actual = st.ba.String()
		res.Reason = compareBits(cmd.Bits, res.Actual)
		res.Passed = res.Reason == ""
	}

	st.opts.metrics.RecordExpect(res.Passed)
	st.logger.WithCase(st.cur).LogExpect(ctx, cmd.Line, res.Passed, res.Reason)
	st.report.Results = append(st.report.Results, res)
}

// compareBits returns the failure reason for expected against actual, or ""
// when they are equal. A content mismatch within the common prefix takes
// precedence over a length mismatch.
func compareBits(expected, actual string) string {
	reason := ""
	if len(expected) != len(actual) {
		reason = ReasonSize
	}
	n := min(len(expected), len(actual))
	if expected[:n] != actual[:n] {
		reason = ReasonContent
	}
	return reason
}

func (st *state) rotate(cmd *Command) {
	res := Result{
		File: st.report.File,
		Line: cmd.Line,
		Case: st.cur,
		Op:   OpRotate,
	}

	if st.ba == nil {
		res.Reason = ReasonNoArray
		res.Err = ErrNoArray
		st.report.Results = append(st.report.Results, res)
		return
	}

	n := st.ba.Len()
	if cmd.Offset >= n || cmd.Length > n || cmd.Offset+cmd.Length > n {
		res.Reason = ReasonInvalidInput
	}

	// A failed input check is reported; the rotation is still attempted.
	if err := st.ba.Rotate(cmd.Offset, cmd.Length, cmd.Shift); err != nil {
		res.Reason = ReasonInvalidInput
		res.Err = err
	}
	if res.Reason != "" {
		st.report.Results = append(st.report.Results, res)
	}

	if st.opts.verbose != nil {
		fmt.Fprintf(st.opts.verbose, "%s rotate off=%d, len=%d, amnt=%d\n", st.ba, cmd.Offset, cmd.Length, cmd.Shift)
	}
}

func (st *state) free() {
	if st.ba != nil {
		_ = st.ba.Free()
		st.ba = nil
	}
}
