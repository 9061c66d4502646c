package script

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/everybit"
)

// Op is a script command.
type Op uint8

const (
	// OpCase begins a test case.
	OpCase Op = iota + 1
	// OpNew replaces the array under test.
	OpNew
	// OpExpect checks the array under test.
	OpExpect
	// OpRotate rotates a range of the array under test.
	OpRotate
	// OpUnknown is a line with an unrecognized command.
	OpUnknown
)

func (o Op) String() string {
	switch o {
	case OpCase:
		return "t"
	case OpNew:
		return "n"
	case OpExpect:
		return "e"
	case OpRotate:
		return "r"
	default:
		return "?"
	}
}

// Command is one parsed script line.
type Command struct {
	Line int
	Op   Op

	Case int    // OpCase
	Bits string // OpNew, OpExpect

	Offset uint64 // OpRotate
	Length uint64
	Shift  int64

	Token string // OpUnknown
}

// Script is a parsed test script.
type Script struct {
	Name     string
	Commands []Command
}

// maxLineSize bounds a single script line; literal bit strings of large
// arrays are long.
const maxLineSize = 64 << 20

// Parse reads a script from r. name is used in errors and reports.
func Parse(name string, r io.Reader) (*Script, error) {
	s := &Script{Name: name}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}

		cmd, err := parseCommand(fields)
		if err != nil {
			err.File = name
			err.Line = line
			return nil, err
		}
		cmd.Line = line
		s.Commands = append(s.Commands, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{File: name, Line: line + 1, Msg: "read", Err: err}
	}
	return s, nil
}

// ParseString parses a script held in memory.
func ParseString(name, src string) (*Script, error) {
	return Parse(name, strings.NewReader(src))
}

func parseCommand(fields []string) (Command, *ParseError) {
	args := fields[1:]

	switch fields[0][0] {
	case 't':
		if len(args) < 1 {
			return Command{}, &ParseError{Msg: "t: missing test id"}
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, &ParseError{Msg: "t: bad test id", Err: err}
		}
		return Command{Op: OpCase, Case: id}, nil

	case 'n', 'e':
		op := OpNew
		if fields[0][0] == 'e' {
			op = OpExpect
		}
		if len(args) < 1 {
			return Command{}, &ParseError{Msg: op.String() + ": missing bit string"}
		}
		if err := checkBits(args[0]); err != nil {
			return Command{}, &ParseError{Msg: op.String() + ": bad bit string", Err: err}
		}
		return Command{Op: op, Bits: args[0]}, nil

	case 'r':
		if len(args) < 3 {
			return Command{}, &ParseError{Msg: "r: want offset, length and shift"}
		}
		offset, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return Command{}, &ParseError{Msg: "r: bad offset", Err: err}
		}
		length, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return Command{}, &ParseError{Msg: "r: bad length", Err: err}
		}
		shift, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return Command{}, &ParseError{Msg: "r: bad shift", Err: err}
		}
		return Command{Op: OpRotate, Offset: offset, Length: length, Shift: shift}, nil

	default:
		return Command{Op: OpUnknown, Token: fields[0]}, nil
	}
}

func checkBits(s string) error {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c != '0' && c != '1' {
			return &everybit.BitStringError{Pos: i, Char: rune(c)}
		}
	}
	return nil
}
