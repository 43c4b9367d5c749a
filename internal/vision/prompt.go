package vision

// analysisPrompt instructs the model to report only physically visible
// features as strict JSON. Subjective marketing language is banned here and
// filtered again in validateAnalysis.
const analysisPrompt = `Analyze this property photograph and identify SPECIFIC PHYSICAL FEATURES visible in the image.

You MUST respond with ONLY valid JSON in this exact format:
{
  "room_type": "kitchen|bedroom|bathroom|living_room|dining_room|garden|exterior|hallway|office|garage|other",
  "detected_features": ["feature1", "feature2"],
  "finishes": ["finish1", "finish2"],
  "light_level": "bright|moderate|dim",
  "view_hint": "garden_view|street_view|park_view|null",
  "interior": true|false,
  "orientation_hint": "north_facing|south_facing|east_facing|west_facing|front_aspect|rear_aspect|null",
  "caption": "8-20 word property caption describing what you see"
}

VALID FEATURES (only list if ACTUALLY VISIBLE):
- Structural: fireplace, bay_window, sash_windows, french_doors, bifold_doors, skylights, exposed_beams, conservatory
- Outdoor: garden, driveway, garage, parking, patio, balcony, terrace, decking, swimming_pool
- Kitchen: kitchen_island, breakfast_bar, range_cooker, integrated_appliances
- Bedroom: ensuite, walk_in_wardrobe, fitted_wardrobes

VALID FINISHES (only list if ACTUALLY VISIBLE):
- Floors: hardwood_floors, marble_flooring, porcelain_tiles, carpet
- Surfaces: granite_countertops, quartz_worktops, wooden_worktops
- Appliances: stainless_steel_appliances, integrated_appliances
- Lighting: recessed_lighting, pendant_lighting, chandeliers

CRITICAL RULES:
1. Only list features/finishes you can ACTUALLY SEE - do not guess or assume
2. If uncertain, leave arrays empty []
3. NEVER use subjective terms like: well_presented, modern, attractive, stunning, beautiful, quality, excellent
4. Caption must describe VISIBLE elements only
5. Respond with ONLY the JSON object, no other text`
