// Package common holds helpers shared by the glass commands: state paths,
// logging setup, terminal text helpers and flag derivation.
package common

import "github.com/GiGurra/boa/pkg/boa"

// DefaultParamEnricher derives flag names and shorthands from Params struct
// fields and gives bool flags a false default.
func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}
