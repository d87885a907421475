// genvariant renders the Variant boilerplate (type constants, conversions,
// the Visitor interface, the JSON decoder table and their tests) from the
// kind list in kinds.txt.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Println(args[0] + ` usage:
	genvariant -in kinds.txt -out variant_gen.go -test variant_gen_test.go`)
	}

	var (
		in      = flags.String("in", "kinds.txt", "kind list")
		out     = flags.String("out", "variant_gen.go", "generated source")
		testOut = flags.String("test", "", "generated test source (optional)")
		v       = flags.Bool("v", false, "produce verbose output")
	)
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	f, err := os.Open(*in)
	if err != nil {
		return errors.Wrap(err, "open kind list")
	}
	defer f.Close()

	def, err := parseKinds(f)
	if err != nil {
		return errors.Wrapf(err, "parse %s", *in)
	}
	def.Source = *in

	if *v {
		log.Println("genvariant")
		log.Printf("Kinds: %d", len(def.Kinds))
		if os.Getenv("GOPACKAGE") != "" {
			log.Printf("go generate called from %s:%s\n", os.Getenv("GOFILE"), os.Getenv("GOLINE"))
		}
	}

	files := []struct {
		path string
		tmpl string
	}{
		{*out, sourceTemplate},
		{*testOut, testTemplate},
	}
	for _, file := range files {
		if file.path == "" {
			continue
		}
		src, err := render(file.tmpl, def)
		if err != nil {
			return errors.Wrapf(err, "render %s", file.path)
		}
		if err := os.WriteFile(file.path, src, 0644); err != nil {
			return errors.Wrapf(err, "write %s", file.path)
		}
		if *v {
			log.Printf("Wrote %s (%s)", file.path, humanize.Bytes(uint64(len(src))))
		}
	}
	return nil
}

// definition is the data handed to the templates.
type definition struct {
	Source string
	Kinds  []kind
}

type kind struct {
	// Name is both the payload type and the suffix of the Type constant.
	Name string
	// Native is the plain Go type From also accepts, or "".
	Native string
}

// parseKinds reads lines of "<Kind> <native|->". Blank lines and lines
// starting with # are skipped.
func parseKinds(r io.Reader) (definition, error) {
	var def definition
	seen := make(map[string]bool)
	natives := make(map[string]string)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return def, errors.Errorf("line %d: want \"<kind> <native>\", got %q", line, text)
		}
		k := kind{Name: fields[0]}
		if fields[1] != "-" {
			k.Native = fields[1]
		}
		if seen[k.Name] {
			return def, errors.Errorf("line %d: duplicate kind %s", line, k.Name)
		}
		seen[k.Name] = true
		if k.Native != "" {
			if other, ok := natives[k.Native]; ok {
				return def, errors.Errorf("line %d: native type %s already maps to %s", line, k.Native, other)
			}
			natives[k.Native] = k.Name
		}
		def.Kinds = append(def.Kinds, k)
	}
	if err := scanner.Err(); err != nil {
		return def, err
	}
	if len(def.Kinds) == 0 {
		return def, errors.New("no kinds declared")
	}
	return def, nil
}
