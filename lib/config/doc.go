// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads keepsake configuration.
//
// Configuration comes from a single file named by the KEEPSAKE_CONFIG
// environment variable (via [Load]) or a --config flag (via
// [LoadFile]). There is no discovery of files in well-known
// locations. Without either, [Load] returns [Default]: the Buray —
// Harbiye event with downloads going to the working directory.
//
// Files ending in .json or .jsonc are parsed as JSON with comments
// and trailing commas allowed; anything else is YAML. Keys not in the
// schema are rejected so a typo cannot silently fall back to a
// default.
//
// After loading, ${HOME} and ${VAR:-default} patterns in path fields
// are expanded, and the result is validated as a whole. Validation
// errors name the offending key the way it is spelled in the file
// (for example "defaults.theme must be one of: emerald, rose, ...").
//
// [Config.KeepsakeEvent] and [Config.DetectOptions] convert the file
// sections into the types the view-model and capability detection
// take.
package config
