// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package header provides common header types for CNS data structures.
//
// This package defines the Header type used across recipes, snapshots, and other
// CNS data structures to provide consistent metadata and versioning information.
//
// # Header Structure
//
// The Header carries a resource kind, an API version and a flat string
// metadata map:
//
//	type Header struct {
//	    Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
//	    APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
//	    Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
//	}
//
// # Usage
//
// Build a header with functional options:
//
//	h := header.New(
//	    header.WithKind(header.KindRecipe),
//	    header.WithAPIVersion("v1"),
//	    header.WithMetadata("node", "gpu-node-1"),
//	)
//
// Or initialize one in place; Init replaces Metadata with a fresh map
// holding "timestamp" (RFC3339, UTC) and, when version is not empty,
// "version":
//
//	var h header.Header
//	h.Init(header.KindSnapshot, "v1", "v1.0.0")
//
// # Serialization
//
// A header initialized as above serializes to JSON as:
//
//	{
//	  "kind": "Snapshot",
//	  "apiVersion": "v1",
//	  "metadata": {
//	    "timestamp": "2025-12-30T10:30:00Z",
//	    "version": "v1.0.0"
//	  }
//	}
//
// # Kind Field
//
// The Kind constants are KindSnapshot, KindRecipe, KindRecipeResult,
// KindValidationResult, KindAuditReport and KindBuildEvent; Kind.IsValid
// reports whether a value is one of them.
//
// # Validation
//
// Header itself enforces no validation; APIVersion and the metadata values
// are stored as given.
package header
