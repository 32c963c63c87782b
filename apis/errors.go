/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrKeyMissing matches every *KeyMissingError.
	ErrKeyMissing = errors.New("coils: key missing")
	// ErrKeyDuplicate matches every *KeyDuplicateError.
	ErrKeyDuplicate = errors.New("coils: key duplicate")
	// ErrIncompatiblePrimitive matches every *IncompatiblePrimitiveError.
	ErrIncompatiblePrimitive = errors.New("coils: incompatible primitive")
	// ErrReservedWord matches every *ReservedWordError.
	ErrReservedWord = errors.New("coils: reserved word")
	// ErrInvalidGeometry matches every *InvalidGeometryError.
	ErrInvalidGeometry = errors.New("coils: invalid geometry")
)

// KeyMissingError is returned when an operation targets an id that is not registered.
type KeyMissingError struct {
	ID string
}

func (e *KeyMissingError) Error() string {
	return fmt.Sprintf("coils: no source with id %q", e.ID)
}

func (e *KeyMissingError) Is(target error) bool { return target == ErrKeyMissing }

// KeyDuplicateError is returned when inserting an id that is already registered.
type KeyDuplicateError struct {
	ID string
}

func (e *KeyDuplicateError) Error() string {
	return fmt.Sprintf("coils: source with id %q already exists", e.ID)
}

func (e *KeyDuplicateError) Is(target error) bool { return target == ErrKeyDuplicate }

// IncompatiblePrimitiveError is returned when a field does not exist on the
// kind of the targeted source, e.g. thickness on a Loop.
type IncompatiblePrimitiveError struct {
	Field Field
	Kind  Kind
}

func (e *IncompatiblePrimitiveError) Error() string {
	return fmt.Sprintf("coils: %s has no field %q", e.Kind, string(e.Field))
}

func (e *IncompatiblePrimitiveError) Is(target error) bool { return target == ErrIncompatiblePrimitive }

// ReservedWordError is returned when inserting a source under a reserved or empty id.
type ReservedWordError struct {
	Word string
}

func (e *ReservedWordError) Error() string {
	if e.Word == "" {
		return "coils: empty id is reserved"
	}
	return fmt.Sprintf("coils: %q is a reserved word", e.Word)
}

func (e *ReservedWordError) Is(target error) bool { return target == ErrReservedWord }

// InvalidGeometryError is returned when a source would get a non-positive
// radius or length, a negative thickness, or a non-finite value.
type InvalidGeometryError struct {
	ID    string
	Field Field
	Value float64
}

func (e *InvalidGeometryError) Error() string {
	return "coils: invalid " + string(e.Field) + "=" + strconv.FormatFloat(e.Value, 'g', -1, 64) +
		" for source " + strconv.Quote(e.ID)
}

func (e *InvalidGeometryError) Is(target error) bool { return target == ErrInvalidGeometry }
