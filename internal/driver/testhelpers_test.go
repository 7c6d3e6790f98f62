package driver

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

const heroSheet = `@section info:
	@field name: %string["Aria"];
	@field level: %int[3];
@end-section

@section combat:
	@field str: %stat[ability: 16; mod: 3];
	@field attack: %dice[1d8+3];
	@field saves: %deathsaves[succ: 0; fail: NULL];
	@field belt: %item[val: "Dagger"; qty: 2; weight: 1];
	@field pack: %itemlist[%item[val: "Rope"; qty: 1; weight: 10];];
	@field empty: %itemlist[];
@end-section

@section notes:
@end-section
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMain(m *testing.M) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	SetLogger(l)
	os.Exit(m.Run())
}
