// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "crypto/sha256"

const DiscriminatorLen = 8

// MethodDiscriminator returns the 8 byte tag that selects the program
// method [name]: the leading bytes of sha256("global:<name>"). Method names
// are the snake_case identifiers the program declares.
func MethodDiscriminator(name string) []byte {
	return discriminator("global", name)
}

// AccountDiscriminator returns the 8 byte tag that prefixes accounts of
// type [name]: the leading bytes of sha256("account:<name>").
func AccountDiscriminator(name string) []byte {
	return discriminator("account", name)
}

func discriminator(namespace, name string) []byte {
	h := sha256.Sum256([]byte(namespace + ":" + name))
	return h[:DiscriminatorLen]
}
