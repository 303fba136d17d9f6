// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/apex/log"
)

// schemaTag is a discovered json struct tag, emitted by --schema.
type schemaTag struct {
	Name string
	Kind string
}

// print renders the tag into its display form.
func (t schemaTag) print() string {
	if t.Kind == "" {
		return t.Name
	}
	return fmt.Sprintf("%-16s %s", t.Name, t.Kind)
}

// newTag builds a schemaTag from a raw json tag value. Skipped fields ("-")
// and untagged fields yield an empty Name.
func newTag(s string, kind reflect.Kind) schemaTag {
	name, _, _ := strings.Cut(s, ",")
	if name == "-" {
		return schemaTag{}
	}

	k := ""
	switch kind {
	case reflect.String:
		k = "string"
	case reflect.Int, reflect.Int64, reflect.Float64:
		k = "number"
	case reflect.Bool:
		k = "bool"
	}
	return schemaTag{Name: name, Kind: k}
}

// DumpSchema writes the attributes of typ, in field order, to w. If w is nil,
// os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, "Summary attributes available to --attrs, --filter and --sort.")
	fmt.Fprintln(w, "")

	tags := schemaWalker(typ)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

// schemaWalker collects the json tags of a struct type.
func schemaWalker(typ reflect.Type) []schemaTag {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	tags := make([]schemaTag, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}

		tag := newTag(tagValue, field.Type.Kind())
		if tag.Name == "" {
			continue
		}
		tags = append(tags, tag)
	}

	return tags
}
