package game

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return gl.PtrOffset(n) }

// instanceFloats is the per-instance layout: posYaw (4) + select (4).
const instanceFloats = 8

// Renderer draws the agent population as octahedral impostor billboards
// plus the demo terrain mesh. It reads the agent store, never writes it.
type Renderer struct {
	// Billboard program.
	billProg uint32
	billVAO  uint32
	quadVBO  uint32
	instVBO  uint32

	uViewProj       int32
	uCamPos         int32
	uRawFrame       int32
	uFrameCount     int32
	uBaseLayer      int32
	uSpritesPerSide int32
	uAlphaClamp     int32
	uPaletteRows    int32
	uFlipH          int32
	uFlipV          int32
	uSwapAxes       int32
	uHemi           int32
	uUseNormal      int32
	uLightDir       int32

	// Ground program.
	groundProg  uint32
	groundVAO   uint32
	groundVBO   uint32
	gUViewProj  int32
	groundVerts int32

	atlasTex    uint32
	normalTex   uint32
	paletteTex  uint32
	paletteRows int

	maxInstances int
}

func NewRenderer(maxInstances int) (*Renderer, error) {
	r := &Renderer{maxInstances: maxInstances, paletteRows: 1}

	prog, err := linkProgram(billboardVertSrc, billboardFragSrc)
	if err != nil {
		return nil, err
	}
	r.billProg = prog

	gl.GenVertexArrays(1, &r.billVAO)
	gl.BindVertexArray(r.billVAO)

	// Unit quad, two triangles.
	quad := []float32{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.GenBuffers(1, &r.instVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instVBO)
	gl.BufferData(gl.ARRAY_BUFFER, maxInstances*instanceFloats*4, nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, instanceFloats*4, glOffset(0))
	gl.VertexAttribDivisor(1, 1)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, instanceFloats*4, glOffset(16))
	gl.VertexAttribDivisor(2, 1)

	gl.UseProgram(r.billProg)
	r.uViewProj = gl.GetUniformLocation(r.billProg, gl.Str("uViewProj\x00"))
	r.uCamPos = gl.GetUniformLocation(r.billProg, gl.Str("uCamPos\x00"))
	r.uRawFrame = gl.GetUniformLocation(r.billProg, gl.Str("uRawFrame\x00"))
	r.uFrameCount = gl.GetUniformLocation(r.billProg, gl.Str("uFrameCount\x00"))
	r.uBaseLayer = gl.GetUniformLocation(r.billProg, gl.Str("uBaseLayer\x00"))
	r.uSpritesPerSide = gl.GetUniformLocation(r.billProg, gl.Str("uSpritesPerSide\x00"))
	r.uAlphaClamp = gl.GetUniformLocation(r.billProg, gl.Str("uAlphaClamp\x00"))
	r.uPaletteRows = gl.GetUniformLocation(r.billProg, gl.Str("uPaletteRows\x00"))
	r.uFlipH = gl.GetUniformLocation(r.billProg, gl.Str("uFlipH\x00"))
	r.uFlipV = gl.GetUniformLocation(r.billProg, gl.Str("uFlipV\x00"))
	r.uSwapAxes = gl.GetUniformLocation(r.billProg, gl.Str("uSwapAxes\x00"))
	r.uHemi = gl.GetUniformLocation(r.billProg, gl.Str("uHemi\x00"))
	r.uUseNormal = gl.GetUniformLocation(r.billProg, gl.Str("uUseNormal\x00"))
	r.uLightDir = gl.GetUniformLocation(r.billProg, gl.Str("uLightDir\x00"))
	gl.Uniform1i(gl.GetUniformLocation(r.billProg, gl.Str("uAtlas\x00")), 0)
	gl.Uniform1i(gl.GetUniformLocation(r.billProg, gl.Str("uPaletteTex\x00")), 1)
	gl.Uniform1i(gl.GetUniformLocation(r.billProg, gl.Str("uNormalAtlas\x00")), 2)

	gprog, err := linkProgram(groundVertSrc, groundFragSrc)
	if err != nil {
		return nil, err
	}
	r.groundProg = gprog
	r.gUViewProj = gl.GetUniformLocation(gprog, gl.Str("uViewProj\x00"))
	gl.GenVertexArrays(1, &r.groundVAO)
	gl.GenBuffers(1, &r.groundVBO)

	return r, nil
}

// UploadAtlas uploads the single-channel impostor atlas as a 2D texture
// array, one layer per (variant, frame). Each layer holds the NxN grid
// of direction cells; texel values are palette indices.
func (r *Renderer) UploadAtlas(pix []uint8, size, layers int) {
	if r.atlasTex == 0 {
		gl.GenTextures(1, &r.atlasTex)
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, r.atlasTex)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.R8, int32(size), int32(size), int32(layers),
		0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pix))
}

// UploadNormalAtlas uploads the optional per-layer normal maps along the
// identical addressing path as the color atlas.
func (r *Renderer) UploadNormalAtlas(pix []uint8, size, layers int) {
	if r.normalTex == 0 {
		gl.GenTextures(1, &r.normalTex)
	}
	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, r.normalTex)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA, int32(size), int32(size), int32(layers),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
}

// UploadPalette uploads the color LUT: 256 indices wide, one row per
// paletteRow value.
func (r *Renderer) UploadPalette(pix []uint8, rows int) {
	if rows < 1 {
		rows = 1
	}
	r.paletteRows = rows
	if r.paletteTex == 0 {
		gl.GenTextures(1, &r.paletteTex)
	}
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.paletteTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 256, int32(rows),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
}

// UploadGround uploads the demo terrain mesh (pos3 + color3 per vertex).
func (r *Renderer) UploadGround(verts []float32) {
	gl.BindVertexArray(r.groundVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.groundVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, glOffset(12))
	r.groundVerts = int32(len(verts) / 6)
}

// BuildInstanceData packs live agents into the per-instance stream.
// Dead agents are excluded here, matching their exclusion from binning.
// buf is reset and reused to avoid per-frame allocations.
func BuildInstanceData(buf []float32, st *AgentStore, vt *VariantTable) []float32 {
	buf = buf[:0]
	for i := 0; i < st.Count; i++ {
		if st.State[i] == AgentDead {
			continue
		}
		vi := vt.ClampVariant(int(st.Variant[i]))
		buf = append(buf,
			st.PosYaw[i*4+0], st.PosYaw[i*4+1], st.PosYaw[i*4+2], st.PosYaw[i*4+3],
			float32(vi), float32(st.PaletteRow[i]), st.FrameOffset[i], vt.Scale[vi],
		)
	}
	return buf
}

// DrawAgents issues one instanced draw for the packed instance stream.
func (r *Renderer) DrawAgents(buf []float32, viewProj mgl32.Mat4, camPos mgl32.Vec3, elapsed float32, cfg RenderConfig, vt *VariantTable) {
	count := len(buf) / instanceFloats
	if count == 0 {
		return
	}
	if count > r.maxInstances {
		count = r.maxInstances
	}

	gl.UseProgram(r.billProg)
	gl.BindVertexArray(r.billVAO)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, r.atlasTex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.paletteTex)
	if cfg.UseNormalMap && r.normalTex != 0 {
		gl.ActiveTexture(gl.TEXTURE2)
		gl.BindTexture(gl.TEXTURE_2D_ARRAY, r.normalTex)
	}

	gl.UniformMatrix4fv(r.uViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(r.uCamPos, camPos.X(), camPos.Y(), camPos.Z())
	gl.Uniform1f(r.uRawFrame, elapsed*AnimFPS)

	var frameCount, baseLayer [MaxVariants]float32
	for v := 0; v < MaxVariants; v++ {
		vi := vt.ClampVariant(v)
		frameCount[v] = float32(vt.FrameCount[vi])
		baseLayer[v] = float32(vt.BaseLayer[vi])
	}
	gl.Uniform1fv(r.uFrameCount, MaxVariants, &frameCount[0])
	gl.Uniform1fv(r.uBaseLayer, MaxVariants, &baseLayer[0])

	gl.Uniform1f(r.uSpritesPerSide, float32(cfg.SpritesPerSide))
	gl.Uniform1f(r.uAlphaClamp, cfg.AlphaClamp)
	gl.Uniform1i(r.uPaletteRows, int32(r.paletteRows))
	gl.Uniform1i(r.uFlipH, boolToI32(cfg.FlipH))
	gl.Uniform1i(r.uFlipV, boolToI32(cfg.FlipV))
	gl.Uniform1i(r.uSwapAxes, boolToI32(cfg.SwapAxes))
	gl.Uniform1i(r.uHemi, boolToI32(cfg.Hemispherical))
	gl.Uniform1i(r.uUseNormal, boolToI32(cfg.UseNormalMap && r.normalTex != 0))
	gl.Uniform3f(r.uLightDir, 0.4, 0.8, 0.45)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.instVBO)
	gl.BufferData(gl.ARRAY_BUFFER, count*instanceFloats*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, int32(count))
}

// DrawGround draws the static terrain mesh.
func (r *Renderer) DrawGround(viewProj mgl32.Mat4) {
	if r.groundVerts == 0 {
		return
	}
	gl.UseProgram(r.groundProg)
	gl.BindVertexArray(r.groundVAO)
	gl.UniformMatrix4fv(r.gUViewProj, 1, false, &viewProj[0])
	gl.DrawArrays(gl.TRIANGLES, 0, r.groundVerts)
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
