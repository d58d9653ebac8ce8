// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Name     string        `flag:"name" desc:"the name"`
		Verbose  bool          `flag:"verbose,v" desc:"enable verbose output"`
		Count    int           `flag:"count" desc:"number of items"`
		Interval time.Duration `flag:"interval" desc:"tick interval"`
		Tags     []string      `flag:"tags" desc:"tag list"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{"--name", "ayse", "-v", "--count", "42", "--interval", "30s", "--tags", "a,b,c"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Name != "ayse" || !p.Verbose || p.Count != 42 || p.Interval != 30*time.Second {
		t.Errorf("parsed params = %+v", p)
	}
	if strings.Join(p.Tags, ",") != "a,b,c" {
		t.Errorf("Tags = %v, want [a b c]", p.Tags)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	var p struct {
		Format   string        `flag:"format" default:"wide"`
		Interval time.Duration `flag:"interval" default:"1s"`
		Open     bool          `flag:"open" default:"true"`
	}
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Format != "wide" || p.Interval != time.Second || !p.Open {
		t.Errorf("defaults = %+v", p)
	}
}

func TestBindFlags_EmbeddedJSONOutput(t *testing.T) {
	var p struct {
		JSONOutput
		First string `flag:"first"`
	}
	flagSet := FlagsFromParams("code", &p)
	if err := flagSet.Parse([]string{"--json", "--first", "Ayşe"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.OutputJSON {
		t.Error("--json did not set OutputJSON")
	}
}

type themeFlag struct {
	value string
}

func (flag *themeFlag) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flag.value, "theme-name", "crimson", "theme")
}

func TestBindFlags_FlagBinder(t *testing.T) {
	var p struct {
		Theme themeFlag
	}
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"--theme-name", "amber"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Theme.value != "amber" {
		t.Errorf("theme = %q, want amber", p.Theme.value)
	}
}

func TestBindFlags_RejectsNonPointer(t *testing.T) {
	var p struct{}
	if err := BindFlags(p, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags accepted a non-pointer")
	}
}

func TestBindFlags_UnsupportedType(t *testing.T) {
	var p struct {
		Ratio complex64 `flag:"ratio"`
	}
	if err := BindFlags(&p, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags accepted an unsupported type")
	}
}

func TestEmitJSON(t *testing.T) {
	var buffer bytes.Buffer
	original := Stdout
	Stdout = &buffer
	t.Cleanup(func() { Stdout = original })

	output := JSONOutput{}
	if done, _ := output.EmitJSON([]string{"x"}); done {
		t.Fatal("EmitJSON reported done without --json")
	}

	output.OutputJSON = true
	var empty []string
	done, err := output.EmitJSON(empty)
	if !done || err != nil {
		t.Fatalf("EmitJSON = (%v, %v)", done, err)
	}
	var decoded []string
	if err := json.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if decoded == nil || strings.TrimSpace(buffer.String()) != "[]" {
		t.Errorf("nil slice encoded as %q, want []", buffer.String())
	}
}
