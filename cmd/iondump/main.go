/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

// Command iondump reads a stream of Ion values (binary or text, detected
// automatically) and re-emits it as text or binary Ion, logging a summary
// of what it saw along the way. It exists mainly to exercise the ion
// package's Reader/Writer pair end to end against real input.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/amazon-ion/ion-go-sub000/ion"
)

var (
	inPath  string
	outPath string
	binary  bool
	pretty  bool
	verbose bool
)

func init() {
	flag.StringVar(&inPath, "in", "", "input file (default: stdin)")
	flag.StringVar(&outPath, "out", "", "output file (default: stdout)")
	flag.BoolVar(&binary, "binary", false, "write binary Ion instead of text")
	flag.BoolVar(&pretty, "pretty", true, "pretty-print text output")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
}

func main() {
	flag.Parse()

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(logger); err != nil {
		logger.Error("iondump failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func run(logger *zap.Logger) error {
	in, err := openInput(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	r := ion.NewReader(in)
	w := newWriter(out)

	d := &dumper{r: r, w: w, log: logger}
	if err := d.run(); err != nil {
		return err
	}
	if err := w.Finish(); err != nil {
		return fmt.Errorf("iondump: finishing output: %w", err)
	}

	logger.Info("done",
		zap.Int("values", d.values),
		zap.Int("containers", d.containers),
		zap.Int("maxDepth", d.maxDepth),
	)
	return nil
}

func openInput(path string) (*os.File, error) {
	if path == "" {
		return os.Stdin, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("iondump: opening input: %w", err)
	}
	return f, nil
}

func openOutput(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("iondump: creating output: %w", err)
	}
	return f, nil
}

func newWriter(out *os.File) ion.Writer {
	if binary {
		return ion.NewBinaryWriter(out)
	}
	opts := ion.TextWriterOpts(0)
	if pretty {
		opts |= ion.TextWriterPretty
	}
	return ion.NewTextWriterOpts(out, opts)
}

// dumper walks a Reader depth-first, re-emitting every value onto a
// Writer and tallying what it saw for the closing log line.
type dumper struct {
	r   ion.Reader
	w   ion.Writer
	log *zap.Logger

	values     int
	containers int
	depth      int
	maxDepth   int
}

func (d *dumper) run() error {
	return d.copyContainer()
}

// copyContainer copies every sibling value at the current depth until
// Next returns false, recursing into any container values it encounters.
func (d *dumper) copyContainer() error {
	for d.r.Next() {
		if err := d.copyValue(); err != nil {
			return err
		}
	}
	return d.r.Err()
}

func (d *dumper) copyValue() error {
	d.values++

	if d.w.IsInStruct() {
		name, err := d.r.FieldName()
		if err != nil {
			return err
		}
		if name != nil {
			if err := d.w.FieldName(*name); err != nil {
				return err
			}
		}
	}

	annots, err := d.r.Annotations()
	if err != nil {
		return err
	}
	if len(annots) > 0 {
		if err := d.w.Annotations(annots...); err != nil {
			return err
		}
	}

	t := d.r.Type()
	if d.r.IsNull() {
		return d.w.WriteNullType(t)
	}

	switch t {
	case ion.BoolType:
		v, err := d.r.BoolValue()
		if err != nil {
			return err
		}
		return d.w.WriteBool(*v)

	case ion.IntType:
		v, err := d.r.BigIntValue()
		if err != nil {
			return err
		}
		return d.w.WriteBigInt(v)

	case ion.FloatType:
		v, err := d.r.FloatValue()
		if err != nil {
			return err
		}
		return d.w.WriteFloat(*v)

	case ion.DecimalType:
		v, err := d.r.DecimalValue()
		if err != nil {
			return err
		}
		return d.w.WriteDecimal(v)

	case ion.TimestampType:
		v, err := d.r.TimestampValue()
		if err != nil {
			return err
		}
		return d.w.WriteTimestamp(*v)

	case ion.SymbolType:
		v, err := d.r.SymbolValue()
		if err != nil {
			return err
		}
		return d.w.WriteSymbol(*v)

	case ion.StringType:
		v, err := d.r.StringValue()
		if err != nil {
			return err
		}
		return d.w.WriteString(*v)

	case ion.ClobType:
		v, err := d.r.ByteValue()
		if err != nil {
			return err
		}
		return d.w.WriteClob(v)

	case ion.BlobType:
		v, err := d.r.ByteValue()
		if err != nil {
			return err
		}
		return d.w.WriteBlob(v)

	case ion.ListType, ion.SexpType, ion.StructType:
		return d.copyNestedContainer(t)

	default:
		return fmt.Errorf("iondump: unexpected type %v", t)
	}
}

func (d *dumper) copyNestedContainer(t ion.Type) error {
	d.containers++
	d.depth++
	if d.depth > d.maxDepth {
		d.maxDepth = d.depth
	}
	d.log.Debug("entering container", zap.Stringer("type", t), zap.Int("depth", d.depth))

	var begin, end func() error
	switch t {
	case ion.ListType:
		begin, end = d.w.BeginList, d.w.EndList
	case ion.SexpType:
		begin, end = d.w.BeginSexp, d.w.EndSexp
	default:
		begin, end = d.w.BeginStruct, d.w.EndStruct
	}

	if err := begin(); err != nil {
		return err
	}
	if err := d.r.StepIn(); err != nil {
		return err
	}
	if err := d.copyContainer(); err != nil {
		return err
	}
	if err := d.r.StepOut(); err != nil {
		return err
	}
	if err := end(); err != nil {
		return err
	}

	d.depth--
	return nil
}
