// Copyright 2016 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package apint

import (
	"github.com/cockroachdb/apint/nat"
	"github.com/globalsign/mgo/bson"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// maxDecimal128Digits is the coefficient precision of a BSON Decimal128.
const maxDecimal128Digits = 34

// BSON kinds accepted by SetBSON.
const (
	bsonString     = 0x02
	bsonInt32      = 0x10
	bsonInt64      = 0x12
	bsonDecimal128 = 0x13
)

// GetBSON implements bson.Getter. Values with up to 34 digits are stored as
// Decimal128, larger ones as their decimal string.
func (x *Int) GetBSON() (interface{}, error) {
	s := x.String()
	digits := len(s)
	if x.neg {
		digits--
	}
	if digits > maxDecimal128Digits {
		return s, nil
	}
	return bson.ParseDecimal128(s)
}

// SetBSON implements bson.Setter. It accepts Decimal128, string, int32 and
// int64 values.
func (x *Int) SetBSON(raw bson.Raw) error {
	switch raw.Kind {
	case bsonDecimal128:
		var w bson.Decimal128
		if err := raw.Unmarshal(&w); err != nil {
			return err
		}
		_, err := x.SetString(w.String())
		return err
	case bsonString:
		var s string
		if err := raw.Unmarshal(&s); err != nil {
			return err
		}
		_, err := x.SetString(s)
		return err
	case bsonInt32, bsonInt64:
		var i int64
		if err := raw.Unmarshal(&i); err != nil {
			return err
		}
		x.SetInt64(i)
		return nil
	}
	return errors.Errorf("SetBSON: unsupported kind %#x", raw.Kind)
}

// MarshalJSON implements json.Marshaler. x is written as a bare number
// literal.
func (x *Int) MarshalJSON() ([]byte, error) {
	if x == nil {
		return []byte("null"), nil
	}
	return x.Append(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts a number literal or a
// string holding a decimal literal. null leaves x unchanged.
func (x *Int) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "UnmarshalJSON")
		}
	}
	if _, err := x.SetString(s); err != nil {
		return errors.Wrap(err, "UnmarshalJSON")
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (x *Int) MarshalText() ([]byte, error) {
	return x.Append(nil), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int) UnmarshalText(text []byte) error {
	_, err := x.SetString(string(text))
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler. The encoding is the
// big-endian bytes of |x|<<1, with bit 0 set when x is negative. Zero is a
// single 0x00 byte.
func (x *Int) MarshalBinary() ([]byte, error) {
	le := nat.Shift(1, x.mag.View())
	if x.neg {
		le[0] |= 1
	}
	le = le[:nat.Trim(le)]
	if len(le) == 0 {
		return []byte{0}, nil
	}
	data := make([]byte, len(le))
	for i, b := range le {
		data[len(le)-1-i] = b
	}
	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for the encoding
// written by MarshalBinary.
func (x *Int) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return errors.New("UnmarshalBinary: no data")
	}
	le := make([]byte, len(data))
	for i, b := range data {
		le[len(data)-1-i] = b
	}
	neg := le[0]&1 == 1
	x.setOwned(nat.Shift(-1, le), neg)
	return nil
}
