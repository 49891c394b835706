// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testProgram = MustParsePublicKey("CktRuQ2mttgRGkXJtyksdKHjUdc2C4TgDzyB98oEzy8")

func TestFindProgramAddress(t *testing.T) {
	tests := []struct {
		name         string
		seeds        [][]byte
		program      PublicKey
		expectedAddr string
		expectedBump uint8
	}{
		{
			name:         "verifierSeed",
			seeds:        [][]byte{[]byte("verifier")},
			program:      testProgram,
			expectedAddr: "2pofv88ZZxmcQ3Czz8bquPg9ydJJBbYsGALptxd25jsf",
			expectedBump: 255,
		},
		{
			name:         "programDataSeed",
			seeds:        [][]byte{testProgram[:]},
			program:      MustParsePublicKey("BPFLoaderUpgradeab1e11111111111111111111111"),
			expectedAddr: "2gMrgtenCigu8Fv9Pfq1zyvcnrHMVdeH9YsUiv9bs1Sx",
			expectedBump: 254,
		},
		{
			name: "reportSeed",
			seeds: [][]byte{{
				0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
				16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31,
			}},
			program:      testProgram,
			expectedAddr: "AdFo4D5uQcJh16ABzNSzyjysSZa7xTDXWCYY85qmeRMN",
			expectedBump: 255,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			addr, bump, err := FindProgramAddress(tt.seeds, tt.program)
			require.NoError(err)
			require.Equal(tt.expectedAddr, addr.String())
			require.Equal(tt.expectedBump, bump)
		})
	}
}

func TestCreateProgramAddress(t *testing.T) {
	require := require.New(t)

	// The bump FindProgramAddress settled on derives the same address.
	addr, err := CreateProgramAddress([][]byte{[]byte("verifier"), {255}}, testProgram)
	require.NoError(err)
	require.Equal("2pofv88ZZxmcQ3Czz8bquPg9ydJJBbYsGALptxd25jsf", addr.String())

	// The next bump down lands on the curve and must be rejected.
	_, err = CreateProgramAddress([][]byte{[]byte("verifier"), {254}}, testProgram)
	require.ErrorIs(err, ErrInvalidDerivedAddress)

	// Bump 255 for the program data derivation is on the curve, which is
	// why FindProgramAddress settles on 254 for it.
	loader := MustParsePublicKey("BPFLoaderUpgradeab1e11111111111111111111111")
	_, err = CreateProgramAddress([][]byte{testProgram[:], {255}}, loader)
	require.ErrorIs(err, ErrInvalidDerivedAddress)
}

func TestProgramAddressSeedLimits(t *testing.T) {
	require := require.New(t)

	tooMany := make([][]byte, MaxSeeds+1)
	for i := range tooMany {
		tooMany[i] = []byte{byte(i)}
	}
	_, err := CreateProgramAddress(tooMany, testProgram)
	require.ErrorIs(err, ErrTooManySeeds)

	_, err = CreateProgramAddress([][]byte{make([]byte, MaxSeedLen+1)}, testProgram)
	require.ErrorIs(err, ErrSeedTooLong)

	_, _, err = FindProgramAddress(tooMany, testProgram)
	require.ErrorIs(err, ErrTooManySeeds)
}

func TestFindProgramAddressDoesNotMutateSeeds(t *testing.T) {
	require := require.New(t)

	seeds := [][]byte{[]byte("verifier")}
	_, _, err := FindProgramAddress(seeds, testProgram)
	require.NoError(err)
	require.Len(seeds, 1)
	require.Equal([]byte("verifier"), seeds[0])
}
