package milkrun

// Fixed gameplay constants. Cadence and durations that players may want to
// tune live in config.MilkrunConfig; these shape the feel of each entity.
const (
	maxDeltaMS = 100.0

	cowWidth       = 40.0
	cowHeight      = 45.0
	cowSpawnMargin = 20.0
	cowArriveDist  = 10.0
	cowCullMargin  = 80.0
	cowLeaveAfter  = 8000.0
	cowLeaveChance = 0.3
	cowWanderMinMS = 3000.0
	cowWanderMaxMS = 5000.0
	cowPoints      = 250
	goldenPoints   = 800
	cowMilk        = 1
	goldenMilk     = 5
	charmFactor    = 0.4
	cowBeamMS      = 200.0

	jokerWidth        = 45.0
	jokerHeight       = 55.0
	jokerSpawnMargin  = 30.0
	jokerBaseSpeed    = 4.5
	jokerLifeMS       = 10000.0
	jokerDetectRange  = 180.0
	jokerFleeStrength = 0.15
	jokerTurnChance   = 0.02
	jokerMaxFactor    = 1.3
	jokerEscapeFactor = 1.5
	jokerWallMargin   = 35.0
	jokerBounceFactor = 1.2
	jokerEscapeMS     = 500.0
	jokerSwirlRate    = 0.002
	jokerSwirlRadius  = 8.0
	jokerPoints       = 25000
	jokerMilk         = 50
	jokerBeamMS       = 300.0

	enemySize        = 32.0
	enemySpawnMargin = 40.0
	enemyBaseSpeed   = 0.6
	enemyWaveSpeed   = 0.08
	enemyMaxBonus    = 2.0
	enemyShootBase   = 3000.0
	enemyShootStep   = 100.0
	enemyShootMin    = 1500.0
	luckyJamDelayMS  = 1000.0
	tankPoints       = 100

	missileSize       = 7.0
	missileLifeMS     = 10000.0
	luckyJamLifeCutMS = 2000.0
	missileGraceMS    = 1500.0
	homingBase        = 0.10
	homingStep        = 0.015
	homingMaxBonus    = 0.08
	missileSpeedBase  = 1.8
	missileSpeedStep  = 0.15
	missileSpeedMax   = 1.2
	antiGravHoming    = 0.5
	antiGravSpeed     = 0.7
	missileCullMargin = 40.0

	hitEnemyRadius   = 25.0
	hitCowRadius     = 22.0
	hitJokerRadius   = 28.0
	hitPlayerRadius  = 25.0
	missilePairRange = 18.0

	vortexRadius       = 120.0
	vortexEnemyPull    = 0.3
	vortexEnemyKill    = 40.0
	vortexMissilePull  = 0.5
	vortexMissileSwall = 35.0

	powerupSize   = 25.0
	powerupMargin = 30.0

	goldenBase     = 0.08
	goldenStep     = 0.01
	goldenMaxBonus = 0.12

	counterRadius = 140.0
	counterMS     = 600.0
	empRadius     = 200.0
	empMS         = 800.0

	particleGravity = 0.08
	maxParticles    = 400
)
