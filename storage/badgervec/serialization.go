// Copyright 2025 Tavolo Labs
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


package badgervec

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"

	"github.com/tavolo/dishsearch/storage"
)

// MUS serializers for the two stored payloads. Vectors use fixed-width
// float32 encoding; metadata maps use length-prefixed strings.
var (
	vectorMUS   = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS = ord.NewMapSer[string, string](ord.String, ord.String)
)

// marshalVector serializes an embedding vector to bytes.
func marshalVector(v []float32) []byte {
	buf := make([]byte, vectorMUS.Size(v))
	vectorMUS.Marshal(v, buf)
	return buf
}

// unmarshalVector deserializes an embedding vector from bytes.
func unmarshalVector(data []byte) ([]float32, error) {
	v, _, err := vectorMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: vector: %w", storage.ErrSerializationFailed, err)
	}
	return v, nil
}

// marshalMetadata serializes a metadata map to bytes.
func marshalMetadata(m map[string]string) []byte {
	buf := make([]byte, metadataMUS.Size(m))
	metadataMUS.Marshal(m, buf)
	return buf
}

// unmarshalMetadata deserializes a metadata map from bytes.
func unmarshalMetadata(data []byte) (map[string]string, error) {
	m, _, err := metadataMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata: %w", storage.ErrSerializationFailed, err)
	}
	return m, nil
}
