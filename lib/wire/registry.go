// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"reflect"
)

// Marshaler is implemented by application objects that can write their
// own payload. A [Registered] value whose type name has no serializer
// on the writing buffer falls back to the object's MarshalWire method.
// Decoding always needs a registered serializer.
type Marshaler interface {
	MarshalWire(buffer *Buffer) error
}

// serializer is a registry entry with the application type erased.
type serializer struct {
	serialize   func(buffer *Buffer, object any) error
	unserialize func(buffer *Buffer) (any, error)
}

// registry maps type names to serializers for one buffer.
type registry map[string]serializer

// Register installs the serializer pair for the type called name on
// buffer, replacing any earlier registration under the same name.
//
// serialize writes the payload of a [Registered] value whose Object is
// a T; unserialize reads it back. Both run with the buffer's cursor
// just past the type name and may use any Write/Read method, including
// WriteSerializable for nested values. Decoded values carry the T that
// unserialize returns.
func Register[T any](buffer *Buffer, name string, serialize func(*Buffer, T) error, unserialize func(*Buffer) (T, error)) {
	if buffer.serializers == nil {
		buffer.serializers = make(registry)
	}
	buffer.serializers[name] = serializer{
		serialize: func(buffer *Buffer, object any) error {
			typed, ok := object.(T)
			if !ok {
				return fmt.Errorf("wire: serializer for type %q expects %v, got %T", name, reflect.TypeFor[T](), object)
			}
			return serialize(buffer, typed)
		},
		unserialize: func(buffer *Buffer) (any, error) {
			return unserialize(buffer)
		},
	}
}

// HasSerializer reports whether a serializer is registered under name.
func (b *Buffer) HasSerializer(name string) bool {
	_, ok := b.serializers[name]
	return ok
}

func (b *Buffer) writeRegistered(value Registered) error {
	entry, registered := b.serializers[value.Type]
	marshaler, canMarshal := value.Object.(Marshaler)
	if !registered && !canMarshal {
		return &MissingSerializerError{Type: value.Type}
	}
	b.putTag(TagRegistered)
	if err := b.WriteToken(value.Type); err != nil {
		return err
	}
	if registered {
		return entry.serialize(b, value.Object)
	}
	return marshaler.MarshalWire(b)
}

func (b *Buffer) readRegistered(depth int) (Value, error) {
	name, err := b.ReadToken()
	if err != nil {
		return nil, err
	}
	entry, ok := b.serializers[name]
	if !ok {
		return nil, &MissingSerializerError{Type: name}
	}
	object, err := b.unserializeAt(entry, name, depth)
	if err != nil {
		return nil, err
	}
	return Registered{Type: name, Object: object}, nil
}

// unserializeAt runs entry one level below depth. Nested values the
// unserializer reads through ReadSerializable are bounded by MaxDepth
// together with the containers around them.
func (b *Buffer) unserializeAt(entry serializer, name string, depth int) (any, error) {
	saved := b.depth
	b.depth = depth + 1
	defer func() { b.depth = saved }()
	object, err := entry.unserialize(b)
	if err != nil {
		return nil, fmt.Errorf("wire: unserialize %q: %w", name, err)
	}
	return object, nil
}
