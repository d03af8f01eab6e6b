// SPDX-License-Identifier: Unlicense OR MIT

// Package gl defines the boundary to the native OpenGL-style API: the
// enumerant and object types shared by the rest of the module, and the
// Functions table through which every native call is issued. Concrete
// Functions implementations are produced outside this module, typically
// by a binding generator; package glimpl provides one over the go-gl
// bindings, and package gltest provides an in-process fake for tests.
package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ACTIVE_TEXTURE                        = 0x84e0
	ALREADY_SIGNALED                      = 0x911a
	ALWAYS                                = 0x207
	ARRAY_BUFFER                          = 0x8892
	ARRAY_BUFFER_BINDING                  = 0x8894
	BACK                                  = 0x0405
	BLEND                                 = 0xbe2
	BLEND_DST_ALPHA                       = 0x80ca
	BLEND_DST_RGB                         = 0x80c8
	BLEND_SRC_ALPHA                       = 0x80cb
	BLEND_SRC_RGB                         = 0x80c9
	BYTE                                  = 0x1400
	CCW                                   = 0x901
	CLAMP_TO_EDGE                         = 0x812f
	COLOR_ATTACHMENT0                     = 0x8ce0
	COLOR_BUFFER_BIT                      = 0x4000
	COLOR_CLEAR_VALUE                     = 0xc22
	COMPILE_STATUS                        = 0x8b81
	CONDITION_SATISFIED                   = 0x911c
	CONTEXT_LOST                          = 0x507
	CULL_FACE                             = 0xb44
	CULL_FACE_MODE                        = 0xb45
	CURRENT_PROGRAM                       = 0x8b8d
	CW                                    = 0x900
	DEBUG_OUTPUT                          = 0x92e0
	DEBUG_OUTPUT_SYNCHRONOUS              = 0x8242
	DEBUG_SEVERITY_HIGH                   = 0x9146
	DEBUG_SEVERITY_LOW                    = 0x9148
	DEBUG_SEVERITY_MEDIUM                 = 0x9147
	DEBUG_SEVERITY_NOTIFICATION           = 0x826b
	DEBUG_SOURCE_API                      = 0x8246
	DEBUG_TYPE_ERROR                      = 0x824c
	DEBUG_TYPE_PERFORMANCE                = 0x8250
	DECR                                  = 0x1e03
	DECR_WRAP                             = 0x8508
	DEPTH_ATTACHMENT                      = 0x8d00
	DEPTH_BUFFER_BIT                      = 0x100
	DEPTH_CLEAR_VALUE                     = 0xb73
	DEPTH_COMPONENT16                     = 0x81a5
	DEPTH_COMPONENT24                     = 0x81a6
	DEPTH_COMPONENT32F                    = 0x8cac
	DEPTH_FUNC                            = 0xb74
	DEPTH_TEST                            = 0xb71
	DEPTH_WRITEMASK                       = 0xb72
	DRAW_FRAMEBUFFER                      = 0x8ca9
	DST_ALPHA                             = 0x304
	DST_COLOR                             = 0x306
	DYNAMIC_DRAW                          = 0x88e8
	ELEMENT_ARRAY_BUFFER                  = 0x8893
	ELEMENT_ARRAY_BUFFER_BINDING          = 0x8895
	EQUAL                                 = 0x202
	EXTENSIONS                            = 0x1f03
	FALSE                                 = 0
	FLOAT                                 = 0x1406
	FRAGMENT_SHADER                       = 0x8b30
	FRAMEBUFFER                           = 0x8d40
	FRAMEBUFFER_BINDING                   = 0x8ca6
	FRAMEBUFFER_COMPLETE                  = 0x8cd5
	FRAMEBUFFER_SRGB                      = 0x8db9
	FRONT                                 = 0x0404
	FRONT_AND_BACK                        = 0x408
	GEQUAL                                = 0x206
	GREATER                               = 0x204
	INCR                                  = 0x1e02
	INCR_WRAP                             = 0x8507
	INFO_LOG_LENGTH                       = 0x8b84
	INT                                   = 0x1404
	INVALID_ENUM                          = 0x500
	INVALID_FRAMEBUFFER_OPERATION         = 0x506
	INVALID_INDEX                         = ^uint(0)
	INVALID_OPERATION                     = 0x502
	INVALID_VALUE                         = 0x501
	INVERT                                = 0x150a
	KEEP                                  = 0x1e00
	LEQUAL                                = 0x203
	LESS                                  = 0x201
	LINEAR                                = 0x2601
	LINES                                 = 0x1
	LINES_ADJACENCY                       = 0xa
	LINE_LOOP                             = 0x2
	LINE_STRIP                            = 0x3
	LINE_STRIP_ADJACENCY                  = 0xb
	LINK_STATUS                           = 0x8b82
	MAX_COMBINED_TEXTURE_IMAGE_UNITS      = 0x8b4d
	MAX_TEXTURE_SIZE                      = 0xd33
	MAX_UNIFORM_BLOCK_SIZE                = 0x8a30
	MAX_VERTEX_ATTRIBS                    = 0x8869
	NEAREST                               = 0x2600
	NEVER                                 = 0x200
	NOTEQUAL                              = 0x205
	NO_ERROR                              = 0x0
	NUM_EXTENSIONS                        = 0x821d
	ONE                                   = 0x1
	ONE_MINUS_DST_ALPHA                   = 0x305
	ONE_MINUS_DST_COLOR                   = 0x307
	ONE_MINUS_SRC_ALPHA                   = 0x303
	ONE_MINUS_SRC_COLOR                   = 0x301
	OUT_OF_MEMORY                         = 0x505
	POINTS                                = 0x0
	READ_FRAMEBUFFER                      = 0x8ca8
	READ_FRAMEBUFFER_BINDING              = 0x8caa
	RED                                   = 0x1903
	RENDERBUFFER                          = 0x8d41
	RENDERBUFFER_BINDING                  = 0x8ca7
	RENDERER                              = 0x1f01
	REPLACE                               = 0x1e01
	RGBA                                  = 0x1908
	RGBA8                                 = 0x8058
	SCISSOR_BOX                           = 0xc10
	SCISSOR_TEST                          = 0xc11
	SHORT                                 = 0x1402
	SRC_ALPHA                             = 0x302
	SRC_COLOR                             = 0x300
	SRGB8_ALPHA8                          = 0x8c43
	SRGB_ALPHA_EXT                        = 0x8c42
	STACK_OVERFLOW                        = 0x503
	STACK_UNDERFLOW                       = 0x504
	STATIC_DRAW                           = 0x88e4
	STENCIL_BUFFER_BIT                    = 0x400
	STENCIL_FAIL                          = 0xb94
	STENCIL_FUNC                          = 0xb92
	STENCIL_PASS_DEPTH_FAIL               = 0xb95
	STENCIL_PASS_DEPTH_PASS               = 0xb96
	STENCIL_REF                           = 0xb97
	STENCIL_TEST                          = 0xb90
	STENCIL_VALUE_MASK                    = 0xb93
	STENCIL_WRITEMASK                     = 0xb98
	SYNC_FLUSH_COMMANDS_BIT               = 0x1
	SYNC_GPU_COMMANDS_COMPLETE            = 0x9117
	TEXTURE0                              = 0x84c0
	TEXTURE_2D                            = 0xde1
	TEXTURE_BINDING_2D                    = 0x8069
	TEXTURE_MAG_FILTER                    = 0x2800
	TEXTURE_MIN_FILTER                    = 0x2801
	TEXTURE_WRAP_S                        = 0x2802
	TEXTURE_WRAP_T                        = 0x2803
	TIMEOUT_EXPIRED                       = 0x911b
	TRIANGLES                             = 0x4
	TRIANGLES_ADJACENCY                   = 0xc
	TRIANGLE_FAN                          = 0x6
	TRIANGLE_STRIP                        = 0x5
	TRIANGLE_STRIP_ADJACENCY              = 0xd
	TRUE                                  = 1
	UNIFORM_BUFFER                        = 0x8a11
	UNIFORM_BUFFER_BINDING                = 0x8a28
	UNPACK_ALIGNMENT                      = 0xcf5
	UNSIGNED_BYTE                         = 0x1401
	UNSIGNED_INT                          = 0x1405
	UNSIGNED_SHORT                        = 0x1403
	VENDOR                                = 0x1f00
	VERSION                               = 0x1f02
	VERTEX_ARRAY_BINDING                  = 0x85b5
	VERTEX_ATTRIB_ARRAY_BUFFER_BINDING    = 0x889f
	VERTEX_ATTRIB_ARRAY_ENABLED           = 0x8622
	VERTEX_ATTRIB_ARRAY_NORMALIZED        = 0x886a
	VERTEX_ATTRIB_ARRAY_POINTER           = 0x8645
	VERTEX_ATTRIB_ARRAY_SIZE              = 0x8623
	VERTEX_ATTRIB_ARRAY_STRIDE            = 0x8624
	VERTEX_ATTRIB_ARRAY_TYPE              = 0x8625
	VERTEX_SHADER                         = 0x8b31
	VIEWPORT                              = 0xba2
	WAIT_FAILED                           = 0x911d
	ZERO                                  = 0x0
)
