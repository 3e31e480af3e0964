package motion

import "github.com/chewxy/math32"

// Camera is a chase-camera pose: where it sits and the point it looks at.
type Camera struct {
	Position [3]float32
	Target   [3]float32
}

// Follower keeps a third-person camera above and behind the character.
// Each Follow moves the camera Smoothing of the remaining distance toward the desired spot.
type Follower struct {
	Offset     [3]float32 // local space, rotated by heading
	Smoothing  float32
	LookAhead  float32
	LookHeight float32

	cam Camera
}

// NewFollower returns a follower with the gallery tuning: 2.5 up, 4 back, 8% per frame.
func NewFollower() *Follower {
	return &Follower{
		Offset:     [3]float32{0, 2.5, 4},
		Smoothing:  0.08,
		LookAhead:  2,
		LookHeight: 1.5,
	}
}

// rotateY rotates v about +Y by angle, matching Facing's convention.
func rotateY(v [3]float32, angle float32) [3]float32 {
	s, c := math32.Sincos(angle)
	return [3]float32{
		v[0]*c + v[2]*s,
		v[1],
		-v[0]*s + v[2]*c,
	}
}

// Desired returns the un-smoothed camera position for p.
func (f *Follower) Desired(p Pose) [3]float32 {
	off := rotateY(f.Offset, p.Heading)
	return [3]float32{
		p.Position[0] + off[0],
		p.Position[1] + off[1],
		p.Position[2] + off[2],
	}
}

func (f *Follower) lookTarget(p Pose) [3]float32 {
	dir := Facing(p.Heading)
	return [3]float32{
		p.Position[0] - dir[0]*f.LookAhead,
		f.LookHeight,
		p.Position[2] - dir[2]*f.LookAhead,
	}
}

// Snap places the camera at the desired pose without smoothing (spawn, teleports).
func (f *Follower) Snap(p Pose) Camera {
	f.cam.Position = f.Desired(p)
	f.cam.Target = f.lookTarget(p)
	return f.cam
}

// Follow eases the camera toward p and aims it at the look-ahead point.
func (f *Follower) Follow(p Pose) Camera {
	want := f.Desired(p)
	for i := range want {
		f.cam.Position[i] += (want[i] - f.cam.Position[i]) * f.Smoothing
	}
	f.cam.Target = f.lookTarget(p)
	return f.cam
}

// Camera returns the last computed camera pose.
func (f *Follower) Camera() Camera {
	return f.cam
}
