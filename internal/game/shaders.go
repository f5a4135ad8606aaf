package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Billboard vertex shader: VBO-based unit quad (divisor 0) plus
// per-instance posYaw/select attributes (divisor 1). The quad basis is
// built from the world-space camera direction so it always faces the
// true camera; the yaw-rotated camera direction is only forwarded for
// atlas cell selection.
const billboardVertSrc = `#version 410 core

layout(location = 0) in vec2 aCorner;  // unit quad, 0..1
layout(location = 1) in vec4 aPosYaw;  // instance: world xyz + yaw
layout(location = 2) in vec4 aSelect;  // instance: variant, paletteRow, frameOffset, scale

uniform mat4 uViewProj;
uniform vec3 uCamPos;

out vec2 vCorner;
flat out vec3 vLocalDir;
flat out float vVariant;
flat out float vPalette;
flat out float vFrameOffset;

void main() {
    vec3 pos = aPosYaw.xyz;
    float yaw = aPosYaw.w;

    vec3 toCam = uCamPos - pos;
    vec3 camDir = toCam / (length(toCam) + 1e-5);

    // Yaw-compensated camera direction, used only for sprite selection.
    float c = cos(yaw);
    float s = sin(yaw);
    vLocalDir = vec3(c * camDir.x - s * camDir.z, camDir.y, s * camDir.x + c * camDir.z);

    // Camera-facing basis. Swap the up reference near the poles so the
    // cross product never degenerates.
    vec3 up = abs(camDir.y) > 0.99 ? vec3(1.0, 0.0, 0.0) : vec3(0.0, 1.0, 0.0);
    vec3 right = normalize(cross(up, camDir));
    vec3 bup = cross(camDir, right);

    float scale = aSelect.w;
    vec3 world = pos + right * (aCorner.x - 0.5) * scale + bup * aCorner.y * scale;

    vCorner = aCorner;
    vVariant = aSelect.x;
    vPalette = aSelect.y;
    vFrameOffset = aSelect.z;
    gl_Position = uViewProj * vec4(world, 1.0);
}
` + "\x00"

// Billboard fragment shader: octahedral cell selection, atlas layer
// addressing (same formulas as the Go codec/addressing paths), palette
// LUT remap with index>0 alpha thresholding, optional normal-layer
// lighting.
const billboardFragSrc = `#version 410 core

uniform sampler2DArray uAtlas;
uniform sampler2DArray uNormalAtlas;
uniform sampler2D uPaletteTex;

uniform float uRawFrame;
uniform float uFrameCount[8];
uniform float uBaseLayer[8];
uniform float uSpritesPerSide;
uniform float uAlphaClamp;
uniform int uPaletteRows;
uniform int uFlipH;
uniform int uFlipV;
uniform int uSwapAxes;
uniform int uHemi;
uniform int uUseNormal;
uniform vec3 uLightDir;

in vec2 vCorner;
flat in vec3 vLocalDir;
flat in float vVariant;
flat in float vPalette;
flat in float vFrameOffset;
out vec4 FragColor;

float signNotZero(float v) { return v >= 0.0 ? 1.0 : -1.0; }

void main() {
    vec3 dir = normalize(vLocalDir);
    float d = abs(dir.x) + abs(dir.y) + abs(dir.z) + 1e-5;
    vec3 p = dir / d;

    vec2 gridUV;
    if (uHemi == 1) {
        gridUV = vec2(p.x + p.z, p.z - p.x) * 0.5 + 0.5;
    } else {
        if (p.y < 0.0) {
            vec2 folded = (1.0 - abs(p.zx)) * vec2(signNotZero(p.x), signNotZero(p.z));
            p.x = folded.x;
            p.z = folded.y;
        }
        gridUV = p.xz * 0.5 + 0.5;
    }

    float n = uSpritesPerSide;
    vec2 cell = floor(clamp(gridUV, 0.0, 1.0) * (n - 1.0) + 0.5);
    if (uSwapAxes == 1) cell = cell.yx;
    if (uFlipH == 1) cell.x = n - 1.0 - cell.x;
    if (uFlipV == 1) cell.y = n - 1.0 - cell.y;

    int v = int(clamp(vVariant, 0.0, 7.0));
    float fc = uFrameCount[v];
    float f = floor(uRawFrame + vFrameOffset);
    float localFrame = f - floor(f / fc) * fc;
    float layer = uBaseLayer[v] + localFrame;

    vec2 uv = (cell + vCorner) / n;
    vec4 t = texture(uAtlas, vec3(uv, layer));

    // Red channel carries an 8-bit palette index; index 0 is transparent.
    float index = floor(t.r * 255.0 + 0.5);
    float row = (clamp(vPalette, 0.0, float(uPaletteRows - 1)) + 0.5) / float(uPaletteRows);
    vec4 col = texture(uPaletteTex, vec2((index + 0.5) / 256.0, row));
    float alpha = index > 0.5 ? col.a : 0.0;
    if (alpha <= uAlphaClamp) discard;

    vec3 rgb = col.rgb;
    if (uUseNormal == 1) {
        vec3 nrm = texture(uNormalAtlas, vec3(uv, layer)).rgb * 2.0 - 1.0;
        float lit = clamp(dot(normalize(nrm), normalize(uLightDir)), 0.15, 1.0);
        rgb *= lit;
    }
    FragColor = vec4(rgb, alpha);
}
` + "\x00"

// Ground vertex shader: static terrain mesh with per-vertex color.
const groundVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aColor;

uniform mat4 uViewProj;

out vec3 vColor;

void main() {
    vColor = aColor;
    gl_Position = uViewProj * vec4(aPos, 1.0);
}
` + "\x00"

const groundFragSrc = `#version 410 core

in vec3 vColor;
out vec4 FragColor;

void main() {
    FragColor = vec4(vColor, 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
