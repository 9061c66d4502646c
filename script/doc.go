// Package script parses and runs bit array test scripts.
//
// A script is line oriented; tokens are separated by white space and the
// first character of the first token selects the command:
//
//	# comment             ignored, as are blank lines
//	t <id>                begin test case id
//	n <bits>              replace the array under test with the literal bits
//	e <bits>              expect the array under test to equal bits exactly
//	r <off> <len> <shift> rotate [off, off+len) right by shift (left if negative)
//
// Lines starting with any other character are reported and skipped.
//
// Load reads a script from a blobstore.BlobStore, decompressing .zst, .gz and
// .lz4 blobs. RunAll loads and runs several scripts concurrently.
//
//	s, err := script.Load(ctx, store, "tests/default")
//	if err != nil {
//	    return err
//	}
//	report, err := script.NewRunner(script.WithSelect(3)).Run(ctx, s)
//	if err != nil {
//	    return err
//	}
//	report.WriteTo(os.Stderr)
package script
