package script

import (
	"bufio"
	"fmt"
	"io"
)

var _ io.WriterTo = (*Report)(nil)

// CaseRun records that a selected test case began at Line.
type CaseRun struct {
	ID   int
	Line int
}

// Report is the outcome of running one script.
type Report struct {
	File    string
	Cases   []CaseRun
	Results []Result
}

// Passed returns the number of expectations that held.
func (r *Report) Passed() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Passed {
			n++
		}
	}
	return n
}

// Failed returns the number of failed expectations and rotations.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// OK reports whether nothing failed.
func (r *Report) OK() bool {
	return r.Failed() == 0
}

// Failures returns the failed results in line order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// WriteTo writes the report in the classic test harness layout:
//
//	Testing file tests/default.
//
//	Running test #0...
//	 --> tests/default at line 4: PASS
//	 --> tests/default at line 6: FAIL
//	    Reason: Incorrect bitarray content.
//	    Expected: 0110
//	      Actual: 0101
//	Done testing file tests/default.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	fmt.Fprintf(cw, "Testing file %s.\n", r.File)
	ci := 0
	for _, res := range r.Results {
		for ci < len(r.Cases) && r.Cases[ci].Line < res.Line {
			fmt.Fprintf(cw, "\nRunning test #%d...\n", r.Cases[ci].ID)
			ci++
		}
		writeResult(cw, res)
	}
	for ; ci < len(r.Cases); ci++ {
		fmt.Fprintf(cw, "\nRunning test #%d...\n", r.Cases[ci].ID)
	}
	fmt.Fprintf(cw, "Done testing file %s.\n", r.File)

	if err := cw.w.(*bufio.Writer).Flush(); err != nil && cw.err == nil {
		cw.err = err
	}
	return cw.n, cw.err
}

func writeResult(w io.Writer, res Result) {
	if res.Passed {
		fmt.Fprintf(w, " --> %s at line %d: PASS\n", res.File, res.Line)
		return
	}
	fmt.Fprintf(w, " --> %s at line %d: FAIL\n", res.File, res.Line)
	switch res.Reason {
	case ReasonSize, ReasonContent:
		fmt.Fprintf(w, "    Reason: Incorrect %s.\n    Expected: %s\n      Actual: %s\n", res.Reason, res.Expected, res.Actual)
	case ReasonInvalidInput:
		fmt.Fprintf(w, "    Reason: TEST SUITE ERROR - %s\n", res.Reason)
	default:
		fmt.Fprintf(w, "    Reason: %s\n", res.Reason)
	}
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
