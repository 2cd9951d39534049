package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice values, modifier,
// and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to
// logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Source returns the wrapped randomness source.
func (r *Roller) Source() Source {
	return r.src
}

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
// Postcondition: result logged; returns RollResult or error.
func (r *Roller) Roll(expr Expression, mods AbilityResolver) (RollResult, error) {
	result, err := Roll(expr, r.src, mods)
	if err != nil {
		return RollResult{}, err
	}
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result, nil
}

// RollExpr parses expr and rolls it, logging the result.
//
// Precondition: expr must be a valid dice expression string.
// Postcondition: Returns a RollResult or a parse/roll error.
func (r *Roller) RollExpr(expr string, mods AbilityResolver) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e, mods)
}

// D20Check resolves a d20 check with the wrapped source and logs it.
//
// Postcondition: result logged at debug level with both draws.
func (r *Roller) D20Check(target, modifier int, adv Advantage) CheckResult {
	result := D20Check(target, modifier, adv, r.src)
	r.logger.Debug("d20 check",
		zap.Ints("rolls", result.Rolls[:]),
		zap.Int("roll", result.Roll),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total),
		zap.Int("target", result.Target),
		zap.String("advantage", string(result.Advantage)),
		zap.Bool("success", result.Success),
	)
	return result
}
