package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"wireglow/postfx"
)

// bloomLevel is one step of the blur chain: a horizontal pass into H and a
// vertical pass into V, both at the level's size.
type bloomLevel struct {
	fbo    [2]uint32
	tex    [2]uint32
	width  int32
	height int32
}

// PostProcessFBO is an HDR off-screen render target with tone mapping and a
// mip-chain bloom (bright-pass → per-level separable Gaussian blur →
// weighted composite).
type PostProcessFBO struct {
	// Main HDR FBO (scene renders into this)
	FBO      uint32
	ColorTex uint32 // RGBA16F colour attachment
	DepthRB  uint32
	Width    int32
	Height   int32

	// Bright-pass target, same size as level 0
	brightFBO uint32
	brightTex uint32

	levels [postfx.BloomMips]bloomLevel

	quadVAO uint32 // empty VAO for the fullscreen triangle

	toneProg      uint32
	hdrLoc        int32
	bloomTexLoc   int32
	expLoc        int32
	hasBloomLoc   int32
	brightProg    uint32
	thresholdLoc  int32
	smoothLoc     int32
	blurProg      uint32
	blurDirLoc    int32
	blurRadiusLoc int32
	blurWeightLoc int32
	compProg      uint32
	compFactorLoc int32
	copyProg      uint32

	blurWeights [postfx.BloomMips][]float32
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// ppVertSrc: fullscreen triangle via gl_VertexID (no VBO needed).
const ppVertSrc = `
#version 410 core
out vec2 fragUV;
void main() {
    const vec2 pos[3] = vec2[3](
        vec2(-1.0, -1.0),
        vec2( 3.0, -1.0),
        vec2(-1.0,  3.0)
    );
    gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
    fragUV      = pos[gl_VertexID] * 0.5 + 0.5;
}
` + "\x00"

// ppToneFragSrc: optional bloom add, exposure, exponential tone map, gamma 2.2.
const ppToneFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D hdrBuffer; // unit 0
uniform sampler2D bloomTex;  // unit 1
uniform float     exposure;
uniform bool      hasBloom;

void main() {
    vec3 hdr = texture(hdrBuffer, fragUV).rgb;
    if (hasBloom) {
        hdr += texture(bloomTex, fragUV).rgb;
    }
    vec3 mapped = vec3(1.0) - exp(-hdr * exposure);
    mapped = pow(mapped, vec3(1.0 / 2.2));
    outColor = vec4(mapped, 1.0);
}
` + "\x00"

// ppBrightFragSrc: keeps pixels whose luminance passes the threshold, with a
// short smooth ramp so the cut does not alias.
const ppBrightFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D hdrBuffer;
uniform float     threshold;
uniform float     smoothWidth;

void main() {
    vec3  color = texture(hdrBuffer, fragUV).rgb;
    float luma  = dot(color, vec3(0.299, 0.587, 0.114));
    float alpha = smoothstep(threshold, threshold + smoothWidth, luma);
    outColor = vec4(color * alpha, 1.0);
}
` + "\x00"

// ppBlurFragSrc: single-axis Gaussian with per-level radius.
// texelDir = (1/w, 0) for horizontal, (0, 1/h) for vertical.
const ppBlurFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D blurTex;
uniform vec2      texelDir;
uniform int       kernelRadius;
uniform float     weights[11];

void main() {
    vec3 result = texture(blurTex, fragUV).rgb * weights[0];
    for (int i = 1; i < kernelRadius; i++) {
        vec2 off = float(i) * texelDir;
        result += (texture(blurTex, fragUV + off).rgb +
                   texture(blurTex, fragUV - off).rgb) * weights[i];
    }
    outColor = vec4(result, 1.0);
}
` + "\x00"

// ppCompositeFragSrc: weighted sum of the five blurred levels.
const ppCompositeFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D level0;
uniform sampler2D level1;
uniform sampler2D level2;
uniform sampler2D level3;
uniform sampler2D level4;
uniform float     factors[5];

void main() {
    vec3 c = factors[0] * texture(level0, fragUV).rgb +
             factors[1] * texture(level1, fragUV).rgb +
             factors[2] * texture(level2, fragUV).rgb +
             factors[3] * texture(level3, fragUV).rgb +
             factors[4] * texture(level4, fragUV).rgb;
    outColor = vec4(c, 1.0);
}
` + "\x00"

// ppCopyFragSrc: plain copy, drawn with additive blending.
const ppCopyFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;
uniform sampler2D src;
void main() {
    outColor = vec4(texture(src, fragUV).rgb, 1.0);
}
` + "\x00"

// brightSmoothWidth is the luminance ramp above the threshold.
const brightSmoothWidth = 0.01

// ── Constructor ───────────────────────────────────────────────────────────────

func NewPostProcessFBO(width, height int) (*PostProcessFBO, error) {
	pp := &PostProcessFBO{}

	progs := []struct {
		dst  *uint32
		frag string
		name string
	}{
		{&pp.toneProg, ppToneFragSrc, "tone-map"},
		{&pp.brightProg, ppBrightFragSrc, "bright-pass"},
		{&pp.blurProg, ppBlurFragSrc, "blur"},
		{&pp.compProg, ppCompositeFragSrc, "bloom composite"},
		{&pp.copyProg, ppCopyFragSrc, "copy"},
	}
	for _, p := range progs {
		prog, err := newProgram(ppVertSrc, p.frag)
		if err != nil {
			pp.Destroy()
			return nil, fmt.Errorf("%s shader: %w", p.name, err)
		}
		*p.dst = prog
	}

	pp.hdrLoc = uniform(pp.toneProg, "hdrBuffer")
	pp.bloomTexLoc = uniform(pp.toneProg, "bloomTex")
	pp.expLoc = uniform(pp.toneProg, "exposure")
	pp.hasBloomLoc = uniform(pp.toneProg, "hasBloom")
	gl.UseProgram(pp.toneProg)
	gl.Uniform1i(pp.hdrLoc, 0)
	gl.Uniform1i(pp.bloomTexLoc, 1)

	pp.thresholdLoc = uniform(pp.brightProg, "threshold")
	pp.smoothLoc = uniform(pp.brightProg, "smoothWidth")
	gl.UseProgram(pp.brightProg)
	gl.Uniform1i(uniform(pp.brightProg, "hdrBuffer"), 0)

	pp.blurDirLoc = uniform(pp.blurProg, "texelDir")
	pp.blurRadiusLoc = uniform(pp.blurProg, "kernelRadius")
	pp.blurWeightLoc = uniform(pp.blurProg, "weights")
	gl.UseProgram(pp.blurProg)
	gl.Uniform1i(uniform(pp.blurProg, "blurTex"), 0)

	pp.compFactorLoc = uniform(pp.compProg, "factors")
	gl.UseProgram(pp.compProg)
	for i := 0; i < postfx.BloomMips; i++ {
		gl.Uniform1i(uniform(pp.compProg, fmt.Sprintf("level%d", i)), int32(i))
	}

	gl.UseProgram(pp.copyProg)
	gl.Uniform1i(uniform(pp.copyProg, "src"), 0)
	gl.UseProgram(0)

	for i, r := range postfx.KernelRadii {
		pp.blurWeights[i] = postfx.GaussianWeights(r)
	}

	gl.GenVertexArrays(1, &pp.quadVAO)

	if err := pp.alloc(width, height); err != nil {
		pp.Destroy()
		return nil, err
	}
	return pp, nil
}

// ── Target lifecycle ──────────────────────────────────────────────────────────

func newColorTarget(width, height int32) (fbo, tex uint32) {
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F,
		width, height, 0, gl.RGBA, gl.HALF_FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
		gl.TEXTURE_2D, tex, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return fbo, tex
}

func deleteTarget(fbo, tex *uint32) {
	if *fbo != 0 {
		gl.DeleteFramebuffers(1, fbo)
		*fbo = 0
	}
	if *tex != 0 {
		gl.DeleteTextures(1, tex)
		*tex = 0
	}
}

func (pp *PostProcessFBO) alloc(width, height int) error {
	pp.Width = int32(width)
	pp.Height = int32(height)

	pp.FBO, pp.ColorTex = newColorTarget(pp.Width, pp.Height)
	gl.GenRenderbuffers(1, &pp.DepthRB)
	gl.BindRenderbuffer(gl.RENDERBUFFER, pp.DepthRB)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, pp.Width, pp.Height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, pp.FBO)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, pp.DepthRB)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("HDR FBO %dx%d incomplete (0x%X)", width, height, status)
	}

	sizes := postfx.MipSizes(width, height)
	pp.brightFBO, pp.brightTex = newColorTarget(int32(sizes[0][0]), int32(sizes[0][1]))
	for i, sz := range sizes {
		lv := &pp.levels[i]
		lv.width, lv.height = int32(sz[0]), int32(sz[1])
		for j := range lv.fbo {
			lv.fbo[j], lv.tex[j] = newColorTarget(lv.width, lv.height)
		}
	}
	return nil
}

func (pp *PostProcessFBO) free() {
	deleteTarget(&pp.FBO, &pp.ColorTex)
	if pp.DepthRB != 0 {
		gl.DeleteRenderbuffers(1, &pp.DepthRB)
		pp.DepthRB = 0
	}
	deleteTarget(&pp.brightFBO, &pp.brightTex)
	for i := range pp.levels {
		lv := &pp.levels[i]
		for j := range lv.fbo {
			deleteTarget(&lv.fbo[j], &lv.tex[j])
		}
	}
}

// Resize recreates every target at the new pixel dimensions.
func (pp *PostProcessFBO) Resize(width, height int) error {
	pp.free()
	return pp.alloc(width, height)
}

// Destroy frees all GPU resources owned by this object.
func (pp *PostProcessFBO) Destroy() {
	pp.free()
	for _, p := range []*uint32{&pp.toneProg, &pp.brightProg, &pp.blurProg, &pp.compProg, &pp.copyProg} {
		if *p != 0 {
			gl.DeleteProgram(*p)
			*p = 0
		}
	}
	if pp.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &pp.quadVAO)
		pp.quadVAO = 0
	}
}

// ── Bloom ─────────────────────────────────────────────────────────────────────

// Bloom runs bright-pass → blur chain → composite. The summed glow ends up
// in levels[0].tex[0]. With toScreen the HDR image plus glow is tone mapped
// into FBO 0; otherwise the glow is added onto the HDR target.
func (pp *PostProcessFBO) Bloom(params postfx.BloomParams, toScreen bool) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(pp.quadVAO)
	gl.ActiveTexture(gl.TEXTURE0)

	// ── Step 1: bright-pass → brightFBO ───────────────────────────────────
	gl.BindFramebuffer(gl.FRAMEBUFFER, pp.brightFBO)
	gl.Viewport(0, 0, pp.levels[0].width, pp.levels[0].height)
	gl.UseProgram(pp.brightProg)
	gl.Uniform1f(pp.thresholdLoc, params.Threshold)
	gl.Uniform1f(pp.smoothLoc, brightSmoothWidth)
	gl.BindTexture(gl.TEXTURE_2D, pp.ColorTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	// ── Step 2: per-level H then V blur, each level reads the previous ────
	gl.UseProgram(pp.blurProg)
	src := pp.brightTex
	for i := range pp.levels {
		lv := &pp.levels[i]
		w := pp.blurWeights[i]
		gl.Viewport(0, 0, lv.width, lv.height)
		gl.Uniform1i(pp.blurRadiusLoc, int32(len(w)))
		gl.Uniform1fv(pp.blurWeightLoc, int32(len(w)), &w[0])

		gl.BindFramebuffer(gl.FRAMEBUFFER, lv.fbo[0])
		gl.Uniform2f(pp.blurDirLoc, 1.0/float32(lv.width), 0)
		gl.BindTexture(gl.TEXTURE_2D, src)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)

		gl.BindFramebuffer(gl.FRAMEBUFFER, lv.fbo[1])
		gl.Uniform2f(pp.blurDirLoc, 0, 1.0/float32(lv.height))
		gl.BindTexture(gl.TEXTURE_2D, lv.tex[0])
		gl.DrawArrays(gl.TRIANGLES, 0, 3)

		src = lv.tex[1]
	}

	// ── Step 3: composite the V results into levels[0].tex[0] ─────────────
	factors := postfx.BloomFactors(params.Radius)
	for i := range factors {
		factors[i] *= params.Strength
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, pp.levels[0].fbo[0])
	gl.Viewport(0, 0, pp.levels[0].width, pp.levels[0].height)
	gl.UseProgram(pp.compProg)
	gl.Uniform1fv(pp.compFactorLoc, postfx.BloomMips, &factors[0])
	for i := range pp.levels {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, pp.levels[i].tex[1])
	}
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.ActiveTexture(gl.TEXTURE0)

	// ── Step 4: output ────────────────────────────────────────────────────
	if toScreen {
		pp.toneMap(params.Exposure, pp.levels[0].tex[0])
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, pp.FBO)
		gl.Viewport(0, 0, pp.Width, pp.Height)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE)
		gl.UseProgram(pp.copyProg)
		gl.BindTexture(gl.TEXTURE_2D, pp.levels[0].tex[0])
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// Blit tone maps the HDR target into FBO 0 without bloom.
func (pp *PostProcessFBO) Blit(exposure float32) {
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(pp.quadVAO)
	pp.toneMap(exposure, 0)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// toneMap draws into FBO 0; bloomTex 0 means no glow.
func (pp *PostProcessFBO) toneMap(exposure float32, bloomTex uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, pp.Width, pp.Height)
	gl.UseProgram(pp.toneProg)
	gl.Uniform1f(pp.expLoc, exposure)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pp.ColorTex)
	if bloomTex != 0 {
		gl.Uniform1i(pp.hasBloomLoc, 1)
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, bloomTex)
		gl.ActiveTexture(gl.TEXTURE0)
	} else {
		gl.Uniform1i(pp.hasBloomLoc, 0)
	}
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}
