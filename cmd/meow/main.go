// meow - MeowMeow stream encoder/decoder
//
// Usage:
//
//	meow   [-i input] [-o output] [-w cols] [-v] [-V]   Encode input
//	unmeow [-i input] [-o output] [-v] [-V]             Decode input
//
// The mode follows the program name: names starting with "m" encode and names
// starting with "u" decode. -e and -d select the mode explicitly.
//
// Input defaults to stdin and output to stdout; "-" names them explicitly.
// -v logs progress to stderr, -v -v logs more.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	meow "github.com/jdknezek/meowmeow-go"
)

type mode int

const (
	modeInvalid mode = iota
	modeEncode
	modeDecode
)

func (m mode) String() string {
	switch m {
	case modeEncode:
		return "encode"
	case modeDecode:
		return "decode"
	default:
		return "invalid"
	}
}

// modeOf picks the mode from the program name.
func modeOf(argv0 string) mode {
	base := filepath.Base(argv0)
	if base == "" {
		return modeInvalid
	}

	switch base[0] {
	case 'm':
		return modeEncode
	case 'u':
		return modeDecode
	default:
		return modeInvalid
	}
}

// counter is a boolean flag that counts how often it is given.
type counter int

func (c *counter) String() string { return strconv.Itoa(int(*c)) }

func (c *counter) IsBoolFlag() bool { return true }

func (c *counter) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*c++
	} else {
		*c = 0
	}
	return nil
}

type options struct {
	in      string
	out     string
	wrap    int
	verbose counter
	version bool
	encode  bool
	decode  bool
}

func newLogger(w io.Writer, verbose counter) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch {
	case verbose >= 2:
		log.SetLevel(logrus.DebugLevel)
	case verbose == 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	name := "meow"
	if len(args) > 0 {
		name = filepath.Base(args[0])
	}

	var opts options
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.in, "i", "-", "input `file`")
	fs.StringVar(&opts.out, "o", "-", "output `file`")
	fs.IntVar(&opts.wrap, "w", 0, "wrap encoded lines after `cols` characters (0 disables)")
	fs.Var(&opts.verbose, "v", "log progress; repeat for more")
	fs.BoolVar(&opts.version, "V", false, "print version and exit")
	fs.BoolVar(&opts.encode, "e", false, "encode regardless of program name")
	fs.BoolVar(&opts.decode, "d", false, "decode regardless of program name")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [-e|-d] [-i input] [-o output] [-w cols] [-v] [-V]\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[min(1, len(args)):]); err != nil {
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "%s: unexpected argument %q\n", name, fs.Arg(0))
		fs.Usage()
		return 1
	}

	if opts.version {
		fmt.Fprintf(stdout, "%s version %s\n", name, meow.Version)
		return 0
	}

	log := newLogger(stderr, opts.verbose)

	m := modeOf(name)
	switch {
	case opts.encode && opts.decode:
		log.Error("-e and -d are mutually exclusive")
		return 1
	case opts.encode:
		m = modeEncode
	case opts.decode:
		m = modeDecode
	}
	if m == modeInvalid {
		log.Errorf("cannot tell whether %q should encode or decode; use -e or -d", name)
		return 1
	}

	if err := process(m, &opts, stdin, stdout, log); err != nil {
		log.WithError(err).Errorf("%s failed", m)
		return 1
	}
	return 0
}

func process(m mode, opts *options, stdin io.Reader, stdout io.Writer, log *logrus.Logger) (err error) {
	var src io.Reader = stdin
	if opts.in != "-" {
		f, err := os.Open(opts.in)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	var dst io.Writer = stdout
	if opts.out != "-" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		dst = f
	}

	entry := log.WithFields(logrus.Fields{
		"mode":   m.String(),
		"input":  opts.in,
		"output": opts.out,
	})
	entry.Debug("starting")

	switch m {
	case modeEncode:
		enc := meow.NewEncoder(dst).Wrap(opts.wrap)
		n, err := enc.ReadFrom(src)
		if err == nil {
			err = enc.Close()
		}
		if err != nil {
			return err
		}
		entry.WithField("bytes", n).Info("encoded")

	case modeDecode:
		if terminal(dst) {
			entry.Warn("decoding to a terminal; output may be binary")
		}
		n, err := meow.DecodeStream(dst, src)
		if err != nil {
			return err
		}
		entry.WithField("bytes", n).Info("decoded")
	}

	return nil
}

func terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
