package scene

import "strings"

// maxLamps must match the lampPos array length in the fragment shader.
const maxLamps = 4

const litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`

// litFragment is a key light plus up to four ceiling lamps (warm, inverse-square falloff) with
// Blinn-Phong highlights on the key light only. $TINT$ is the GLSL expression for the surface colour.
const litFragment = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform sampler2D texture0;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform vec3 lampPos[4];
uniform float lampCount;
uniform vec3 lampColor;
uniform float lampRange;
out vec4 finalColor;
void main() {
  vec4 surface = $TINT$;
  vec3 n = normalize(fragNormal);
  vec3 toKey = normalize(lightDir);
  vec3 toEye = normalize(viewPos - fragPosition);

  float key = max(dot(n, toKey), 0.0);
  vec3 lit = ambient.rgb + lightColor * lightIntensity * key;

  for (int i = 0; i < 4; i++) {
    if (float(i) >= lampCount) break;
    vec3 d = lampPos[i] - fragPosition;
    float falloff = 1.0 / (1.0 + dot(d, d) / (lampRange * lampRange));
    lit += lampColor * max(dot(n, normalize(d)), 0.0) * falloff;
  }

  float gloss = pow(max(dot(n, normalize(toKey + toEye)), 0.0), specularPower) * specularStrength;
  vec3 highlight = key > 0.0 ? lightColor * gloss : vec3(0.0);
  finalColor = vec4(surface.rgb * lit + highlight, surface.a);
}
`

var (
	litFS         = strings.Replace(litFragment, "$TINT$", "colDiffuse", 1)
	litTexturedFS = strings.Replace(litFragment, "$TINT$", "texture(texture0, fragTexCoord) * colDiffuse", 1)
)

// Gallery light: bright neutral ambient so the walls read as off-white, a soft key from the
// open side and warm ceiling panels.
var (
	ambientColor = [4]float32{0.5, 0.5, 0.5, 1.0}
	keyColor     = [3]float32{1.0, 0.96, 0.9}
	lampColor    = [3]float32{0.35, 0.3, 0.24}
)

const (
	keyIntensity     = float32(0.4)
	specularPower    = float32(32.0)
	specularStrength = float32(0.08)
	lampRange        = float32(4.5)
)
