package generator

import "fmt"

// Prompts ask for a bare JSON array so parsing stays schema-driven. Models
// routinely wrap output in code fences anyway; cleanJSONArray handles that.

func zonePrompt(region string) string {
	return fmt.Sprintf(`You are an expert scuba diving guide with deep knowledge of dive destinations worldwide.

List the major scuba diving zones (prefectures, states, provinces or large coastal districts) of %s that are known for diving.

Respond with a JSON array only, no prose and no markdown. Each element:
{"name": "zone name in English", "description": "one sentence on what makes this zone notable for divers"}

Only include zones with established recreational diving. Use commonly recognized English place names.`, region)
}

func areaPrompt(region, zone string) string {
	return fmt.Sprintf(`You are an expert scuba diving guide with deep knowledge of dive destinations worldwide.

List the dive areas (towns, bays, islands or stretches of coast where dive operators are based) within %s, %s.

Respond with a JSON array only, no prose and no markdown. Each element:
{"name": "area name in English", "description": "one sentence on the area's diving character"}

Only include areas with real, active dive sites. Use commonly recognized English place names.`, zone, region)
}

func pointPrompt(region, zone, area string) string {
	return fmt.Sprintf(`You are an expert scuba diving guide with deep knowledge of dive destinations worldwide.

List the individual dive points (named dive sites) in %s, %s, %s.

Respond with a JSON array only, no prose and no markdown. Each element:
{
  "name": "dive site name in English",
  "description": "two or three sentences describing the site",
  "level": "beginner, intermediate or advanced",
  "maxDepth": 25,
  "entryType": "boat or beach",
  "current": "none, mild, moderate or strong",
  "topography": ["wall", "drop-off"],
  "features": ["sea turtles", "soft coral"],
  "latitude": 0.0,
  "longitude": 0.0,
  "imageKeyword": "two or three word image search phrase"
}

maxDepth is the maximum depth in meters as a number. topography and features are short string arrays.

Only include real, documented dive sites. Use accurate coordinates when known, otherwise the area's approximate coordinates.`, area, zone, region)
}
