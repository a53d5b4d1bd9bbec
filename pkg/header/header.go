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

package header

import (
	"time"
)

// APIVersion is the schema version written into every document.
const APIVersion = "hostfetch.nvidia.com/v1alpha1"

// Kind represents the type of a hostfetch document.
type Kind string

const (
	KindSnapshot   Kind = "Snapshot"
	KindCacheEntry Kind = "CacheEntry"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindSnapshot, KindCacheEntry:
		return true
	default:
		return false
	}
}

// Header contains metadata and versioning information for hostfetch documents.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the API version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs with metadata about the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets the kind and API version and records the creation timestamp and
// producer version in Metadata. Existing metadata is replaced.
func (h *Header) Init(kind Kind, version string, now time.Time) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = make(map[string]string, 2)
	h.Metadata["timestamp"] = now.UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata["version"] = version
	}
}

// SetMetadata adds a metadata key-value pair, initializing the map if needed.
func (h *Header) SetMetadata(key, value string) {
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[key] = value
}

// Matches reports whether the header was written for kind with the current API version.
func (h *Header) Matches(kind Kind) bool {
	return h.Kind == kind && h.APIVersion == APIVersion
}
