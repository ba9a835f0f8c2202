package rules

import "fmt"

// CompileProfile generates the team-mode rule set from a profile's
// constants. Conditions are built via fmt.Sprintf with interpolated
// values, so the compiler never generates invalid expr.
func CompileProfile(p Profile) []*Rule {
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:         "spawn-safety",
		Priority:     1000,
		ConditionSrc: `OnUnsafeSpawn()`,
		Decide:       DecideSpawnSafety,
	})

	rules = append(rules, &Rule{
		Name:         "adjacent-threat",
		Priority:     900,
		ConditionSrc: `len(AdjacentEnemies()) > 0`,
		Decide:       DecideAdjacentThreat,
	})

	rules = append(rules, &Rule{
		Name:         "approach-doomed",
		Priority:     800,
		ConditionSrc: `len(DoomedEnemies()) > 0`,
		Decide:       DecideApproach,
	})

	rules = append(rules, &Rule{
		Name:         "chase-weak",
		Priority:     700,
		ConditionSrc: chaseCondition(p),
		Decide:       DecideChase,
	})

	rules = append(rules, &Rule{
		Name:         "defensive-attack",
		Priority:     600,
		ConditionSrc: `len(EnemiesAt(2)) > 0`,
		Decide:       DecideDefensiveAttack,
	})

	rules = append(rules, &Rule{
		Name:         "regroup",
		Priority:     100,
		ConditionSrc: `true`,
		Decide:       DecideRegroup,
	})

	return rules
}

// CompileSoloProfile generates the single-unit chain: suicide, spawn
// safety, flee, attack, chase or rally. Every unit decides alone.
func CompileSoloProfile(p Profile) []*Rule {
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:         "suicide",
		Priority:     1100,
		ConditionSrc: soloSuicideCondition(p),
		Decide:       DecideSuicide,
	})

	rules = append(rules, &Rule{
		Name:         "spawn-safety",
		Priority:     1000,
		ConditionSrc: `OnUnsafeSpawn()`,
		Decide:       DecideSpawnSafety,
	})

	rules = append(rules, &Rule{
		Name:         "flee",
		Priority:     900,
		ConditionSrc: `len(AdjacentEnemies()) > 1 || ExpectsEnemySuicide()`,
		Decide:       DecideFlee,
	})

	rules = append(rules, &Rule{
		Name:         "attack-weakest",
		Priority:     800,
		ConditionSrc: `len(AdjacentEnemies()) > 0`,
		Decide:       DecideAttackWeakest,
	})

	rules = append(rules, &Rule{
		Name:         "chase-weak",
		Priority:     700,
		ConditionSrc: chaseCondition(p),
		Decide:       DecideChase,
	})

	rules = append(rules, &Rule{
		Name:         "defensive-attack",
		Priority:     600,
		ConditionSrc: `len(EnemiesAt(2)) > 0`,
		Decide:       DecideDefensiveAttack,
	})

	rules = append(rules, &Rule{
		Name:         "rally",
		Priority:     100,
		ConditionSrc: `!AtRally()`,
		Decide:       DecideRally,
	})

	return rules
}

// soloSuicideCondition: adjacent enemies outgun us, or we are nearly dead
// and surrounded, before the profile's turn limit if it has one.
func soloSuicideCondition(p Profile) string {
	lowHP := fmt.Sprintf(`len(AdjacentEnemies()) > 1 && HP() < %d`, p.SuicideHP)
	if p.SuicideTurnLimit > 0 {
		lowHP += fmt.Sprintf(` && TurnNumber() < %d`, p.SuicideTurnLimit)
	}
	return fmt.Sprintf(`AdjacentThreat() > HP() || (%s)`, lowHP)
}

// chaseCondition: the nearest enemy is close, has at most two average hits
// left and is weaker than us.
func chaseCondition(p Profile) string {
	return fmt.Sprintf(`NearestEnemyDistance() > 0 && NearestEnemyDistance() < %d && NearestEnemyHP() <= %d && NearestEnemyHP() < HP()`,
		p.ChaseDistance, 2*p.AvgDamage)
}
