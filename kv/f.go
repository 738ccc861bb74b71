// Copyright (c) 2019 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

type (
	GetFunc        func(key []byte) ([]byte, error)
	HasFunc        func(key []byte) (bool, error)
	IsNotFoundFunc func(err error) bool
	PutFunc        func(key, val []byte) error
	DeleteFunc     func(key []byte) error
	SnapshotFunc   func() Snapshot
	IterateFunc    func(r Range) Iterator
	ReleaseFunc    func()

	FirstFunc func() bool
	LastFunc  func() bool
	NextFunc  func() bool
	PrevFunc  func() bool
	KeyFunc   func() []byte
	ValueFunc func() []byte
	ErrorFunc func() error
)

func (f GetFunc) Get(key []byte) ([]byte, error)   { return f(key) }
func (f HasFunc) Has(key []byte) (bool, error)     { return f(key) }
func (f IsNotFoundFunc) IsNotFound(err error) bool { return f(err) }
func (f PutFunc) Put(key, val []byte) error        { return f(key, val) }
func (f DeleteFunc) Delete(key []byte) error       { return f(key) }
func (f SnapshotFunc) Snapshot() Snapshot          { return f() }
func (f IterateFunc) Iterate(r Range) Iterator     { return f(r) }
func (f ReleaseFunc) Release()                     { f() }

func (f FirstFunc) First() bool    { return f() }
func (f LastFunc) Last() bool      { return f() }
func (f NextFunc) Next() bool      { return f() }
func (f PrevFunc) Prev() bool      { return f() }
func (f KeyFunc) Key() []byte      { return f() }
func (f ValueFunc) Value() []byte  { return f() }
func (f ErrorFunc) Error() error   { return f() }
