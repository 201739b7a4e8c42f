package game

// HelpText — справка по управлению, отдаваемая по команде help.
// Чисто информационная: никак не влияет на состояние сетки.
const HelpText = `Voxel Builder — controls:
  Left click   — place the selected block
  Right click  — remove the block under the pointer
  Drag         — orbit the camera around the structure
  Scroll       — zoom in/out (distance 10..50)
  Block types  — cube, slope, pyramid, stone, wood
  Save / Load  — persist and restore the grid (one slot)
  Clear        — remove all blocks (asks for confirmation)`
