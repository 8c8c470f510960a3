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

package iostream

import (
	"bytes"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/amazon-ion/ion-go-sub000/arena"
)

// MappedFile is a read-only Stream backed by a memory-mapped file,
// matching ion-c's ion_stream_open_file_in when the caller knows the
// whole file is addressable at once: no paging through the arena is
// needed because the kernel already pages the file in on demand, so
// Close is the only extra lifecycle step beyond a plain Stream.
type MappedFile struct {
	*Stream
	data mmap.MMap
	f    *os.File
}

// OpenMappedFile memory-maps f for reading and wraps it in a Stream.
// Closing the returned MappedFile unmaps the file; it does not close f.
func OpenMappedFile(f *os.File) (*MappedFile, error) {
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	return &MappedFile{
		Stream: NewReader(arena.NewOwner(), bytes.NewReader(data)),
		data:   data,
		f:      f,
	}, nil
}

// Close unmaps the underlying file.
func (m *MappedFile) Close() error {
	return m.data.Unmap()
}
