// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shamir.
//
// go-shamir is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package shamir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCombineText(t *testing.T) {
	secret := []byte("correct horse battery staple")
	shares, err := SplitText(secret, 3, 5)
	require.NoError(t, err)
	require.Len(t, shares, 5)

	for i, share := range shares {
		assert.Equal(t, i+1, share.Index)
		assert.NoError(t, share.Validate())
	}

	got, err := CombineText(shares[1:4])
	require.NoError(t, err)
	assert.Equal(t, secret, got)

	got, err = CombineText(shares)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestSplitText_InvalidParameters(t *testing.T) {
	_, err := SplitText([]byte("x"), 1, 3)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = SplitText([]byte("x"), 4, 3)
	assert.ErrorIs(t, err, ErrInvalidTotal)

	_, err = SplitText([]byte("x"), 2, 256)
	assert.ErrorIs(t, err, ErrInvalidTotal)

	_, err = SplitText(nil, 2, 3)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestCombineText_Errors(t *testing.T) {
	shares, err := SplitText([]byte("secret"), 3, 5)
	require.NoError(t, err)

	_, err = CombineText(nil)
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = CombineText(shares[:2])
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = CombineText([]*TextShare{shares[0], shares[0], shares[1]})
	assert.ErrorIs(t, err, ErrDuplicateShare)

	_, err = CombineText([]*TextShare{shares[0], nil, shares[2]})
	assert.Error(t, err)

	bad := *shares[0]
	bad.Value = "not base64!"
	_, err = CombineText([]*TextShare{&bad, shares[1], shares[2]})
	assert.Error(t, err)
}
