package fuzztests

import (
	"testing"
	"time"

	"isl/internal/diag"
	"isl/internal/fuzzy"
	"isl/internal/lexer"
	"isl/internal/parser"
	"isl/internal/source"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsDomain(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.isl", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		reporter := &diag.BagReporter{Bag: bag}
		toks, lerr := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
		if lerr != nil {
			return
		}

		_ = parser.Parse(toks, parser.Options{Reporter: reporter})
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Add specific edge cases exercising panic-mode recovery
	f.Add([]byte("domain D {\n  entity E {\n"))                  // unclosed braces
	f.Add([]byte("domain D { entity { } }"))                     // entity without name
	f.Add([]byte("domain D { version version version }"))        // repeated keyword
	f.Add([]byte("domain D { invariants { ((((((((x)))))))) }")) // deep nesting
	f.Add([]byte("domain D { type = }"))                         // alias without sides
	f.Add([]byte("domain D { enum S { , , , } }"))               // empty variants

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		// Run parser in a goroutine and bound its runtime
		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.isl", input)
			file := fs.Get(fileID)

			bag := diag.NewBag(128)
			reporter := &diag.BagReporter{Bag: bag}
			toks, lerr := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
			if lerr != nil {
				return
			}

			_ = parser.Parse(toks, parser.Options{Reporter: reporter})
		}()

		select {
		case <-done:
			// Parser completed
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzFuzzyNeverFails checks the recovery pipeline's core guarantee: any
// byte sequence yields a non-nil domain and a coverage ratio in [0,1].
func FuzzFuzzyNeverFails(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		res := fuzzy.Parse(fs, "fuzz.isl", input, fuzzy.Options{})
		if res.Domain == nil {
			t.Fatalf("fuzzy parse returned nil domain for input %q", truncateForLog(input, 200))
		}
		if res.Coverage < 0 || res.Coverage > 1 {
			t.Fatalf("coverage %v out of range for input %q", res.Coverage, truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen], []byte("...")...)
}
