package loader

// gltfGLBMagic is the first word of a GLB container, "glTF" little-endian.
const gltfGLBMagic = 0x46546C67
