package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.isl файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".isl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

// addLanguageSeeds feeds hand-picked snippets covering every member kind
// plus the malformed shapes fuzzy mode is supposed to recover from.
func addLanguageSeeds(f *testing.F) {
	seeds := []string{
		"",
		"domain A {\n  version: \"1.0\"\n}\n",
		"domain Shop {\n  version: \"1.0\"\n  entity User {\n    id: UUID\n    email: String { maxLength: 254 }\n  }\n}\n",
		"domain Shop {\n  version: \"1.0\"\n  behavior Checkout {\n    input { cart: List<UUID> }\n    output { success: Bool }\n  }\n}\n",
		"domain S {\n  version: \"1.0\"\n  type Money = Decimal\n  enum Status { Active, Closed }\n}\n",
		"domain S {\n  version: \"1.0\"\n  invariants {\n    total >= 0\n  }\n}\n",
		"@version \"1.2\"\ndomain V {\n  version: \"1.0\"\n}\n",
		// malformed shapes: unclosed braces, bare keywords, tab indent
		"domain Broken {\n  entity User {\n    id: UUID\n  entity Next {\n    id: UUID\n  }\n}\n",
		"domain\n",
		"}}}{{{",
		"domain T {\n\tversion: \"1.0\",\n\tentity U {\n\t\tname: string\n\t}\n}\n",
		"entity Orphan {\n  id: UUID\n}\n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
