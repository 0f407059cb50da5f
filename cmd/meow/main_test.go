package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maxatome/go-testdeep/td"
)

func runWith(args []string, stdin string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestModeOf(t *testing.T) {
	for argv0, m := range map[string]mode{
		"meow":          modeEncode,
		"/usr/bin/meow": modeEncode,
		"meowmeow":      modeEncode,
		"unmeow":        modeDecode,
		"./bin/unmeow":  modeDecode,
		"cat":           modeInvalid,
		"/usr/bin/Meow": modeInvalid,
		"":              modeInvalid,
	} {
		td.Cmp(t, modeOf(argv0), m, argv0)
	}
}

func TestRunEncode(t *testing.T) {
	code, stdout, stderr := runWith([]string{"meow"}, "M\n")
	td.Cmp(t, code, 0)
	td.Cmp(t, stdout, "mEowMEoWmeowMeOw")
	td.Cmp(t, stderr, "")
}

func TestRunDecode(t *testing.T) {
	code, stdout, stderr := runWith([]string{"/usr/local/bin/unmeow"}, "mEowMEoW\nmeowMeOw\n")
	td.Cmp(t, code, 0)
	td.Cmp(t, stdout, "M\n")
	td.Cmp(t, stderr, "")
}

func TestRunModeFlags(t *testing.T) {
	code, stdout, _ := runWith([]string{"cat", "-e"}, "\xff")
	td.Cmp(t, code, 0)
	td.Cmp(t, stdout, "MEOWMEOW")

	code, stdout, _ = runWith([]string{"meow", "-d"}, "MEOWMEOW")
	td.Cmp(t, code, 0)
	td.Cmp(t, stdout, "\xff")

	code, _, stderr := runWith([]string{"meow", "-e", "-d"}, "")
	td.Cmp(t, code, 1)
	td.Cmp(t, stderr, td.Contains("mutually exclusive"))

	code, _, stderr = runWith([]string{"cat"}, "")
	td.Cmp(t, code, 1)
	td.Cmp(t, stderr, td.Contains("use -e or -d"))
}

func TestRunWrap(t *testing.T) {
	code, stdout, _ := runWith([]string{"meow", "-w", "8"}, "\x00\xff")
	td.Cmp(t, code, 0)
	td.Cmp(t, stdout, "meowmeow\nMEOWMEOW\n")

	code, stdout, _ = runWith([]string{"unmeow"}, stdout)
	td.Cmp(t, code, 0)
	td.Cmp(t, stdout, "\x00\xff")
}

func TestRunBadInput(t *testing.T) {
	code, stdout, stderr := runWith([]string{"unmeow"}, "MEOWMEOWmeowmeoX")
	td.Cmp(t, code, 1)
	td.Cmp(t, stdout, "\xff")
	td.Cmp(t, stderr, td.All(
		td.Contains("level=error"),
		td.Contains("decode failed"),
		td.Contains("invalid letter"),
	))

	code, _, stderr = runWith([]string{"unmeow"}, "meowmeo")
	td.Cmp(t, code, 1)
	td.Cmp(t, stderr, td.Contains("truncated input"))
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runWith([]string{"/opt/unmeow", "-V"}, "")
	td.Cmp(t, code, 0)
	td.Cmp(t, stdout, "unmeow version 0.1.0\n")
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runWith([]string{"meow", "-x"}, "")
	td.Cmp(t, code, 1)
	td.Cmp(t, stderr, td.Contains("usage: meow"))

	code, _, stderr = runWith([]string{"meow", "extra"}, "")
	td.Cmp(t, code, 1)
	td.Cmp(t, stderr, td.Contains(`unexpected argument "extra"`))
}

func TestRunVerbose(t *testing.T) {
	code, _, stderr := runWith([]string{"meow", "-v"}, "abc")
	td.Cmp(t, code, 0)
	td.Cmp(t, stderr, td.All(
		td.Contains("level=info"),
		td.Contains("msg=encoded"),
		td.Contains("bytes=3"),
		td.Not(td.Contains("level=debug")),
	))

	code, _, stderr = runWith([]string{"meow", "-v", "-v"}, "abc")
	td.Cmp(t, code, 0)
	td.Cmp(t, stderr, td.Contains("msg=starting"))
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain")
	encoded := filepath.Join(dir, "encoded")
	decoded := filepath.Join(dir, "decoded")

	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	td.CmpNoError(t, os.WriteFile(plain, data, 0o600))

	code, _, stderr := runWith([]string{"meow", "-i", plain, "-o", encoded}, "")
	td.Cmp(t, code, 0, stderr)

	code, _, stderr = runWith([]string{"unmeow", "-i", encoded, "-o", decoded}, "")
	td.Cmp(t, code, 0, stderr)

	enc, err := os.ReadFile(encoded)
	td.CmpNoError(t, err)
	td.Cmp(t, enc, td.Len(8*len(data)))

	dec, err := os.ReadFile(decoded)
	td.CmpNoError(t, err)
	td.Cmp(t, dec, data)

	code, _, stderr = runWith([]string{"meow", "-i", filepath.Join(dir, "missing")}, "")
	td.Cmp(t, code, 1)
	td.Cmp(t, stderr, td.Contains("no such file"))
}
