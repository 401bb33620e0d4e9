package algo

// CopticGraveAccent is U+0300 COMBINING GRAVE ACCENT as used after Coptic
// letters, where it triggers an "e" prefix rather than a combining-accent
// romanization.
const CopticGraveAccent = 0x0300
