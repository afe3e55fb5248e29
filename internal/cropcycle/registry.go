// Package cropcycle materializes dated farming tasks from static crop-cycle
// templates. Each supported crop has an immutable CropConfig describing the
// activities across its growth duration; the generator projects the entries
// that fall inside a look-ahead window from "now" into DailyTask records.
package cropcycle

import "cropwatch/internal/types"

// Display colors per activity, shared across crop templates.
const (
	colorSoil    = "#8D6E63"
	colorSeed    = "#66BB6A"
	colorWater   = "#42A5F5"
	colorFert    = "#AB47BC"
	colorPest    = "#EF5350"
	colorWeed    = "#9CCC65"
	colorWatch   = "#FFA726"
	colorHarvest = "#FFD54F"
)

// registry holds the static crop configurations, keyed by crop ID.
// Configs are lowland Philippine schedules; day 1 is planting day.
var registry = map[string]types.CropConfig{
	"rice":     riceConfig,
	"corn":     cornConfig,
	"tomato":   tomatoConfig,
	"eggplant": eggplantConfig,
}

// Lookup returns the CropConfig for the given crop ID. The second return is
// false for unknown crops; an unknown crop is not an error condition.
func Lookup(cropID string) (types.CropConfig, bool) {
	cfg, ok := registry[cropID]
	return cfg, ok
}

// CropIDs returns the IDs of all supported crops.
func CropIDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

var riceConfig = types.CropConfig{
	ID:           "rice",
	Name:         "Rice (Palay)",
	DurationDays: 110,
	Templates: []types.TaskTemplate{
		{Day: 1, Type: types.TaskLandPreparation, Title: "Final land preparation", Description: "Level the paddy and repair bunds before transplanting.", Stage: types.StageLandPreparation, WeatherSensitive: true, Color: colorSoil},
		{Day: 1, Type: types.TaskPlanting, Title: "Transplant seedlings", Description: "Transplant 20-25 day old seedlings at 20x20 cm spacing.", Stage: types.StageLandPreparation, WeatherSensitive: true, Color: colorSeed},
		{Day: 7, Type: types.TaskFertilization, Title: "Basal fertilizer application", Description: "Apply complete fertilizer (14-14-14) as basal dose.", Stage: types.StageEarlyGrowth, WeatherSensitive: true, Color: colorFert},
		{Day: 10, Type: types.TaskIrrigation, Title: "Maintain water level", Description: "Keep 2-3 cm of standing water in the paddy.", Stage: types.StageEarlyGrowth, WeatherSensitive: false, Color: colorWater, RepeatEveryDays: 5, RepeatUntilDay: 90},
		{Day: 14, Type: types.TaskWeeding, Title: "First weeding", Description: "Hand weed or rotary weed between rows.", Stage: types.StageEarlyGrowth, WeatherSensitive: false, Color: colorWeed},
		{Day: 21, Type: types.TaskPestControl, Title: "Scout for stem borer", Description: "Check for deadhearts and egg masses; spray only past threshold.", Stage: types.StageVegetative, WeatherSensitive: true, Color: colorPest, RepeatEveryDays: 14, RepeatUntilDay: 77},
		{Day: 30, Type: types.TaskFertilization, Title: "Top-dress nitrogen", Description: "Apply urea at active tillering.", Stage: types.StageVegetative, WeatherSensitive: true, Color: colorFert},
		{Day: 35, Type: types.TaskWeeding, Title: "Second weeding", Description: "Remove weeds before canopy closure.", Stage: types.StageVegetative, WeatherSensitive: false, Color: colorWeed},
		{Day: 60, Type: types.TaskFertilization, Title: "Panicle initiation fertilizer", Description: "Apply final nitrogen dose at panicle initiation.", Stage: types.StageReproductive, WeatherSensitive: true, Color: colorFert},
		{Day: 65, Type: types.TaskMonitoring, Title: "Monitor for rice bug", Description: "Inspect panicles at flowering for rice bug damage.", Stage: types.StageReproductive, WeatherSensitive: false, Color: colorWatch},
		{Day: 95, Type: types.TaskIrrigation, Title: "Drain the paddy", Description: "Drain standing water to harden grain for harvest.", Stage: types.StageMaturity, WeatherSensitive: false, Color: colorWater},
		{Day: 110, Type: types.TaskHarvest, Title: "Harvest", Description: "Harvest when 80-85% of grains are golden yellow.", Stage: types.StageHarvest, WeatherSensitive: true, Color: colorHarvest},
	},
}

var cornConfig = types.CropConfig{
	ID:           "corn",
	Name:         "Corn (Mais)",
	DurationDays: 100,
	Templates: []types.TaskTemplate{
		{Day: 1, Type: types.TaskLandPreparation, Title: "Furrow the field", Description: "Prepare furrows 75 cm apart on well-drained soil.", Stage: types.StageLandPreparation, WeatherSensitive: true, Color: colorSoil},
		{Day: 1, Type: types.TaskPlanting, Title: "Sow seeds", Description: "Plant 1-2 seeds per hill, 25 cm between hills.", Stage: types.StageLandPreparation, WeatherSensitive: true, Color: colorSeed},
		{Day: 10, Type: types.TaskIrrigation, Title: "Irrigate", Description: "Furrow irrigate if no rainfall within the week.", Stage: types.StageEarlyGrowth, WeatherSensitive: false, Color: colorWater, RepeatEveryDays: 10, RepeatUntilDay: 80},
		{Day: 14, Type: types.TaskFertilization, Title: "Side-dress fertilizer", Description: "Apply urea beside the row and hill up.", Stage: types.StageEarlyGrowth, WeatherSensitive: true, Color: colorFert},
		{Day: 21, Type: types.TaskWeeding, Title: "Off-bar cultivation", Description: "Cultivate between rows to control weeds.", Stage: types.StageVegetative, WeatherSensitive: false, Color: colorWeed},
		{Day: 30, Type: types.TaskPestControl, Title: "Check for armyworm", Description: "Scout whorls for fall armyworm frass and larvae.", Stage: types.StageVegetative, WeatherSensitive: true, Color: colorPest, RepeatEveryDays: 14, RepeatUntilDay: 72},
		{Day: 40, Type: types.TaskFertilization, Title: "Second side-dress", Description: "Apply remaining nitrogen before tasseling.", Stage: types.StageVegetative, WeatherSensitive: true, Color: colorFert},
		{Day: 55, Type: types.TaskMonitoring, Title: "Monitor silking", Description: "Confirm uniform silking; note moisture stress.", Stage: types.StageReproductive, WeatherSensitive: false, Color: colorWatch},
		{Day: 100, Type: types.TaskHarvest, Title: "Harvest", Description: "Harvest when husks are dry and kernels glazed.", Stage: types.StageHarvest, WeatherSensitive: true, Color: colorHarvest},
	},
}

var tomatoConfig = types.CropConfig{
	ID:           "tomato",
	Name:         "Tomato (Kamatis)",
	DurationDays: 75,
	Templates: []types.TaskTemplate{
		{Day: 1, Type: types.TaskLandPreparation, Title: "Prepare raised beds", Description: "Form raised beds with drainage canals.", Stage: types.StageLandPreparation, WeatherSensitive: true, Color: colorSoil},
		{Day: 1, Type: types.TaskPlanting, Title: "Transplant seedlings", Description: "Transplant hardened seedlings late afternoon.", Stage: types.StageLandPreparation, WeatherSensitive: true, Color: colorSeed},
		{Day: 3, Type: types.TaskIrrigation, Title: "Water seedlings", Description: "Water lightly every other day until established.", Stage: types.StageEarlyGrowth, WeatherSensitive: false, Color: colorWater, RepeatEveryDays: 3, RepeatUntilDay: 60},
		{Day: 10, Type: types.TaskFertilization, Title: "Starter fertilizer", Description: "Apply starter solution around each plant.", Stage: types.StageEarlyGrowth, WeatherSensitive: true, Color: colorFert},
		{Day: 14, Type: types.TaskMonitoring, Title: "Stake and prune", Description: "Install stakes and remove lower suckers.", Stage: types.StageVegetative, WeatherSensitive: false, Color: colorWatch},
		{Day: 20, Type: types.TaskPestControl, Title: "Scout for fruitworm", Description: "Check flowers and young fruit for fruitworm entry holes.", Stage: types.StageVegetative, WeatherSensitive: true, Color: colorPest, RepeatEveryDays: 10, RepeatUntilDay: 60},
		{Day: 28, Type: types.TaskFertilization, Title: "Side-dress at flowering", Description: "Side-dress with potassium-rich fertilizer.", Stage: types.StageReproductive, WeatherSensitive: true, Color: colorFert},
		{Day: 60, Type: types.TaskHarvest, Title: "First harvest", Description: "Pick breaker-stage fruit every 3-4 days.", Stage: types.StageHarvest, WeatherSensitive: false, Color: colorHarvest, RepeatEveryDays: 4, RepeatUntilDay: 75},
	},
}

var eggplantConfig = types.CropConfig{
	ID:           "eggplant",
	Name:         "Eggplant (Talong)",
	DurationDays: 90,
	Templates: []types.TaskTemplate{
		{Day: 1, Type: types.TaskLandPreparation, Title: "Prepare planting holes", Description: "Dig holes 50 cm apart and mix in compost.", Stage: types.StageLandPreparation, WeatherSensitive: true, Color: colorSoil},
		{Day: 1, Type: types.TaskPlanting, Title: "Transplant seedlings", Description: "Transplant 30-day old seedlings at dusk.", Stage: types.StageLandPreparation, WeatherSensitive: true, Color: colorSeed},
		{Day: 4, Type: types.TaskIrrigation, Title: "Water plants", Description: "Water at the base; avoid wetting foliage.", Stage: types.StageEarlyGrowth, WeatherSensitive: false, Color: colorWater, RepeatEveryDays: 4, RepeatUntilDay: 80},
		{Day: 14, Type: types.TaskFertilization, Title: "First side-dress", Description: "Apply urea and muriate of potash around plants.", Stage: types.StageEarlyGrowth, WeatherSensitive: true, Color: colorFert},
		{Day: 21, Type: types.TaskPestControl, Title: "Scout for shoot borer", Description: "Remove and destroy wilted shoots with borer larvae.", Stage: types.StageVegetative, WeatherSensitive: true, Color: colorPest, RepeatEveryDays: 7, RepeatUntilDay: 84},
		{Day: 30, Type: types.TaskWeeding, Title: "Weed and mulch", Description: "Weed between rows and lay rice straw mulch.", Stage: types.StageVegetative, WeatherSensitive: false, Color: colorWeed},
		{Day: 45, Type: types.TaskFertilization, Title: "Flowering fertilizer", Description: "Side-dress complete fertilizer at first flowering.", Stage: types.StageReproductive, WeatherSensitive: true, Color: colorFert},
		{Day: 70, Type: types.TaskHarvest, Title: "Begin harvest", Description: "Harvest glossy fruit every 5 days with pruning shears.", Stage: types.StageHarvest, WeatherSensitive: false, Color: colorHarvest, RepeatEveryDays: 5, RepeatUntilDay: 90},
	},
}
