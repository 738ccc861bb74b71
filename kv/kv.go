// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value abstractions shared by the storage layers.
package kv

import "github.com/pkg/errors"

// GetOptional reads key from g, reporting a missing key as (nil, false, nil)
// instead of an error.
func GetOptional(g Getter, key []byte) ([]byte, bool, error) {
	val, err := g.Get(key)
	if err != nil {
		if g.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "kv get")
	}
	return val, true, nil
}
