package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotorkit/engine"
)

func TestAlphabetBijection(t *testing.T) {
	a := Latin()
	require.Equal(t, 26, a.N())
	for i := 0; i < a.N(); i++ {
		code, ok := a.Code(a.Symbol(i))
		require.True(t, ok)
		assert.Equal(t, i, code)
	}
	assert.False(t, a.Contains('#'))
}

func TestSymmetric(t *testing.T) {
	s := NewSymmetric(Latin())
	code, err := s.CodeEncrypt('q')
	require.NoError(t, err)
	assert.Equal(t, 16, code)
	assert.Equal(t, "q", s.SymbolDecrypt(16))

	_, err = s.CodeEncrypt('Q')
	assert.ErrorIs(t, err, engine.ErrInputInvalid)
}

func TestAsymmetricSpaceOnZ(t *testing.T) {
	a := NewAsymmetric(New("abcdefghijklmnopqrstuvwxy "), Latin())

	// The space bar keys the Z contact; z itself cannot be typed.
	code, err := a.CodeEncrypt(' ')
	require.NoError(t, err)
	assert.Equal(t, 25, code)
	_, err = a.CodeEncrypt('z')
	assert.ErrorIs(t, err, engine.ErrInputInvalid)

	// Ciphertext is plain letters; the Z contact decrypts back to a space.
	assert.True(t, a.ValidDecrypt('z'))
	assert.False(t, a.ValidEncrypt('z'))
	assert.Equal(t, "z", a.SymbolEncrypt(25))
	assert.Equal(t, " ", a.SymbolDecrypt(25))
}

func TestShiftingKeyboardState(t *testing.T) {
	s := NewShifting(
		New("abcdefghi<klmnopqrstuvwxy>"),
		New("123456789<0-.,:;()?!=+/zv>"),
		Latin(),
	)
	require.Equal(t, Letters, s.State())

	// In letters mode digits are invalid; after the figure shift they key
	// the same contacts the letters did.
	assert.False(t, s.ValidEncrypt('1'))
	code, err := s.CodeEncrypt('>')
	require.NoError(t, err)
	s.Commit(code, true)
	require.Equal(t, Figures, s.State())

	code, err = s.CodeEncrypt('1')
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.False(t, s.ValidEncrypt('b'))

	code, err = s.CodeEncrypt('<')
	require.NoError(t, err)
	s.Commit(code, true)
	assert.Equal(t, Letters, s.State())
}

func TestShiftingPrinter(t *testing.T) {
	s := NewShifting(
		New("abcdefghi<klmnopqrstuvwxy>"),
		New("123456789<0-.,:;()?!=+/zv>"),
		Latin(),
	)

	// Shift codes are swallowed on decrypt unless ShowShifts is on; the
	// printer state still transitions.
	fig, _ := New("abcdefghi<klmnopqrstuvwxy>").Code('>')
	assert.Equal(t, "", s.SymbolDecrypt(fig))
	s.Commit(fig, false)
	assert.Equal(t, "1", s.SymbolDecrypt(0))

	s.Reset()
	s.ShowShifts = true
	assert.Equal(t, ">", s.SymbolDecrypt(fig))
	s.Commit(fig, false)
	assert.Equal(t, "1", s.SymbolDecrypt(0))
}
