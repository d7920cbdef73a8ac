// Package rustname names the items of a generated Rust file: the module
// identifier of a script, its script struct and the names the file imports.
package rustname

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// Uses is the import block every generated file starts with.
var Uses = []string{
	"use std::borrow::Cow;",
	"use std::collections::HashMap;",
	"use std::fmt;",
	"use std::str::FromStr;",
	"",
	"use num_bigint::BigInt;",
	"use rust_decimal::Decimal;",
	"use rust_decimal::prelude::FromPrimitive;",
	"use serde::{Deserialize, Serialize};",
	"use serde_json::{json, Value};",
	"use smallvec::smallvec;",
	"",
	"use perro_core::prelude::*;",
}

// engine lists the prelude and std items generated code refers to by name.
var engine = []string{
	"NodeID", "UIElementID", "ScriptApi", "Script", "ScriptObject",
	"Option", "Some", "None", "Vec", "String", "Box", "Result",
}

// Identifier turns a script path into the identifier its generated file and
// entry point are named after:
//
//	res://bob.pup                     -> bob_pup
//	res://scripts/bob.pup             -> scripts_bob_pup
//	/home/me/game/res/scripts/bob.pup -> scripts_bob_pup
func Identifier(scriptPath string) (string, error) {
	cleaned := strings.ReplaceAll(scriptPath, `\`, "/")
	switch {
	case strings.HasPrefix(cleaned, "res://"):
		cleaned = strings.TrimPrefix(cleaned, "res://")
	case strings.HasPrefix(cleaned, "user://"):
		cleaned = strings.TrimPrefix(cleaned, "user://")
	case strings.Contains(cleaned, "/res/"):
		cleaned = cleaned[strings.Index(cleaned, "/res/")+len("/res/"):]
	case strings.HasPrefix(cleaned, "res/"):
		cleaned = strings.TrimPrefix(cleaned, "res/")
	}

	dir, file := path.Split(cleaned)
	ext := path.Ext(file)
	if ext == "" || ext == file {
		return "", fmt.Errorf("script path %q has no extension", scriptPath)
	}
	stem := strings.TrimSuffix(file, ext)

	var parts []string
	for _, p := range strings.Split(strings.Trim(dir, "/"), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, strings.ToLower(stem), strings.ToLower(ext[1:]))
	return sanitize(strings.Join(parts, "_")), nil
}

// sanitize replaces anything Rust does not accept in an identifier.
func sanitize(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Pascal converts a snake_case identifier: scripts_bob_pup -> ScriptsBobPup.
func Pascal(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}

// StructName is the name of the generated script struct.
func StructName(id string) string {
	return Pascal(id) + "Script"
}

// Reserved returns the type names a user struct may not take in the file
// generated for id: everything Uses imports, the engine items the file
// refers to, and the script struct itself. An empty id leaves the script
// struct out.
func Reserved(id string) map[string]bool {
	names := make(map[string]bool)
	for _, use := range Uses {
		for _, name := range imported(use) {
			names[name] = true
		}
	}
	for _, name := range engine {
		names[name] = true
	}
	if id != "" {
		names[StructName(id)] = true
	}
	return names
}

// imported lists the names one use line brings into scope. Glob imports
// bring none the caller can list.
func imported(use string) []string {
	use = strings.TrimSuffix(strings.TrimPrefix(use, "use "), ";")
	if use == "" {
		return nil
	}
	if open := strings.Index(use, "{"); open >= 0 {
		var names []string
		for _, item := range strings.Split(strings.Trim(use[open:], "{}"), ",") {
			if item = strings.TrimSpace(item); item != "" {
				names = append(names, item)
			}
		}
		return names
	}
	last := use[strings.LastIndex(use, "::")+2:]
	if last == "*" {
		return nil
	}
	return []string{last}
}
